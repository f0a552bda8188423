package routes

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisphere/config"
	"agrisphere/database"
	"agrisphere/handlers"
	"agrisphere/models"
	"agrisphere/services"
)

const secret = "routes-secret"

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	ctx := context.Background()
	store, err := database.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(store.Close)

	h := &handlers.Handler{
		Auth:       &services.AuthService{Store: store, Secret: []byte(secret), AccessTTL: time.Minute, RefreshTTL: time.Hour},
		Prediction: &services.PredictionService{Store: store},
		Assistant:  &services.AssistantService{Chats: services.NewChatStore(0, 0, 0)},
		Store:      store,
	}
	app := fiber.New()
	SetupRoutes(app, h)
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "u1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func statusOf(t *testing.T, app *fiber.App, method, target, auth string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestPublicRoutes(t *testing.T) {
	app := newApp(t)
	assert.Equal(t, 200, statusOf(t, app, "GET", "/api/v1/health", ""))
	assert.Equal(t, 200, statusOf(t, app, "GET", "/api/v1/db", ""))
	assert.Equal(t, 400, statusOf(t, app, "GET", "/api/weather", ""))
	assert.Equal(t, 400, statusOf(t, app, "GET", "/api/v1/agri/weather/current", ""))
	assert.Equal(t, 404, statusOf(t, app, "GET", "/api/v1/unknown", ""))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newApp(t)
	for _, r := range []struct{ method, target string }{
		{"POST", "/api/v1/predict"},
		{"POST", "/api/v1/agri/copilot"},
		{"POST", "/api/v1/agri/crop-gpt"},
		{"POST", "/api/v1/agri/chat"},
		{"POST", "/api/v1/agri/vision"},
		{"GET", "/api/v1/agri/chat/s1"},
		{"GET", "/api/v1/user/me"},
		{"GET", "/api/v1/admin/users/u1/predictions"},
	} {
		assert.Equal(t, 401, statusOf(t, app, r.method, r.target, ""), r.target)
	}
}

func TestRoleGates(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, 200, statusOf(t, app, "GET", "/api/v1/user/me/predictions", bearer(t, "farmer")))
	assert.Equal(t, 403, statusOf(t, app, "GET", "/api/v1/user/me/predictions", bearer(t, "admin")))

	assert.Equal(t, 200, statusOf(t, app, "GET", "/api/v1/admin/users/u1/predictions", bearer(t, "admin")))
	assert.Equal(t, 403, statusOf(t, app, "GET", "/api/v1/admin/users/u1/predictions", bearer(t, "farmer")))

	assert.Equal(t, 404, statusOf(t, app, "GET", "/api/v1/agri/chat/missing", bearer(t, "farmer")))
	assert.Equal(t, 403, statusOf(t, app, "GET", "/api/v1/agri/chat/missing", bearer(t, "guest")))
}
