package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// newTestServer builds a server bound to the "test" instance of a fresh
// registry.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(store.NewRegistry(), "test", zap.NewNop(), nil)
	require.NoError(t, err)
	return srv
}

// doJSON issues a request against the server's router. A non-nil body is
// JSON-encoded.
func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON response into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid arguments", func(t *testing.T) {
		srv, err := NewServer(store.NewRegistry(), "suite-a", zap.NewNop(), &Config{Host: "localhost", Port: 9090})
		require.NoError(t, err)
		assert.NotNil(t, srv)
		assert.Equal(t, 9090, srv.config.Port)
	})

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		srv, err := NewServer(store.NewRegistry(), "suite-a", zap.NewNop(), nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", srv.config.Host)
		assert.Equal(t, 8080, srv.config.Port)
	})

	t.Run("returns error when registry is nil", func(t *testing.T) {
		_, err := NewServer(nil, "suite-a", zap.NewNop(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry")
	})

	t.Run("returns error when instance id is empty", func(t *testing.T) {
		_, err := NewServer(store.NewRegistry(), "", zap.NewNop(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instance id")
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(store.NewRegistry(), "suite-a", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger")
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	decode(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.InstanceID)
	assert.Equal(t, Version, resp.Version)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Generate a request so the counter has a sample.
	doJSON(t, srv, http.MethodGet, "/health", nil)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flowmock_http_requests_total")
}

func TestInstanceIsolation(t *testing.T) {
	registry := store.NewRegistry()

	srvA, err := NewServer(registry, "suite-a", zap.NewNop(), nil)
	require.NoError(t, err)
	srvB, err := NewServer(registry, "suite-b", zap.NewNop(), nil)
	require.NoError(t, err)

	rec := doJSON(t, srvA, http.MethodPost, "/api/v1/dags", map[string]any{"dag_id": "etl"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Visible on the instance that created it.
	rec = doJSON(t, srvA, http.MethodGet, "/api/v1/dags/etl", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Invisible to a server bound to a different id.
	rec = doJSON(t, srvB, http.MethodGet, "/api/v1/dags/etl", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSharedInstanceSeesSameState(t *testing.T) {
	registry := store.NewRegistry()

	srv1, err := NewServer(registry, "shared", zap.NewNop(), nil)
	require.NoError(t, err)
	srv2, err := NewServer(registry, "shared", zap.NewNop(), nil)
	require.NoError(t, err)

	rec := doJSON(t, srv1, http.MethodPost, "/api/v1/dags", map[string]any{"dag_id": "etl"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv2, http.MethodGet, "/api/v1/dags/etl", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
