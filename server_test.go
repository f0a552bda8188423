package main

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"agrisphere/config"
	"agrisphere/handlers"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func errorBody(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	msg, _ := body["error"].(string)
	return resp.StatusCode, msg
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	logs := withObservedLogger(t)
	app := newApp(config.Default(), &handlers.Handler{})
	app.Get("/panics", func(c *fiber.Ctx) error {
		panic("nil map write in handler")
	})
	app.Get("/fails", func(c *fiber.Ctx) error {
		return errors.New("pq: password authentication failed for user agri")
	})

	status, msg := errorBody(t, app, "/panics")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", msg)

	status, msg = errorBody(t, app, "/fails")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", msg)

	entries := logs.FilterMessage("unhandled_error").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/fails", entries[1].ContextMap()["path"])
	assert.Contains(t, entries[1].ContextMap()["error"], "password authentication failed")
}

func TestErrorHandlerKeepsFiberErrors(t *testing.T) {
	withObservedLogger(t)
	app := newApp(config.Default(), &handlers.Handler{})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	status, msg := errorBody(t, app, "/teapot")
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", msg)

	status, msg = errorBody(t, app, "/nowhere")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Cannot GET /nowhere", msg)
}
