package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPostJSONSendsOneRequest(t *testing.T) {
	var calls int32
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Yield": 3.2}`))
	}))
	defer srv.Close()

	var out struct {
		Yield float64 `json:"Yield"`
	}
	c := New(srv.Client())
	err := c.PostJSON(context.Background(), srv.URL+"/predict", map[string]string{"crop": "Rice"}, &out)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "Rice", got["crop"])
	assert.Equal(t, 3.2, out.Yield)
}

func TestGetJSONEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kolkata", r.URL.Query().Get("q"))
		assert.Equal(t, "abc", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"name":"Kolkata"}`))
	}))
	defer srv.Close()

	var out map[string]any
	err := New(srv.Client()).GetJSON(context.Background(), srv.URL+"/data/2.5/weather", url.Values{"q": {"kolkata"}, "appid": {"abc"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", out["name"])
}

func TestNon2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	var out map[string]any
	err := New(srv.Client()).GetJSON(context.Background(), srv.URL, url.Values{"appid": {"secret"}}, &out)
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "city not found")
	assert.NotContains(t, upstreamErr.Error(), "secret")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := New(srv.Client()).GetJSON(context.Background(), srv.URL, nil, &out)
	assert.ErrorIs(t, err, ErrMalformedBody)
	assert.Zero(t, StatusCode(err))
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportFailure(t *testing.T) {
	err := New(failingClient{}).PostJSON(context.Background(), "http://model.invalid/predict", struct{}{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNilOutDiscardsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`ignored`))
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.Client()).PostJSON(context.Background(), srv.URL, map[string]int{"a": 1}, nil))
}
