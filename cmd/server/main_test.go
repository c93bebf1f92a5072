package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/printfolio/printfolio/internal/config"
	"github.com/printfolio/printfolio/internal/orders"
	"github.com/printfolio/printfolio/internal/storage"
)

const testAdminKey = "test-admin-key"

func newTestServer(store storage.ObjectStore, admin storage.AdminClient, orderStore orders.Store) *echo.Echo {
	cfg := &config.Config{
		Storage: config.StorageConfig{
			Endpoint: "storage.example.com",
			Bucket:   "prints",
			UseSSL:   true,
		},
		Admin: config.AdminConfig{Key: testAdminKey},
	}
	return newServer(cfg, store, admin, orderStore)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(new(MockObjectStore), new(MockAdminClient), new(MockOrderStore))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServerAddsSecurityHeaders(t *testing.T) {
	e := newTestServer(new(MockObjectStore), new(MockAdminClient), new(MockOrderStore))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestAdminRoutesRequireKey(t *testing.T) {
	e := newTestServer(new(MockObjectStore), new(MockAdminClient), new(MockOrderStore))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/files"},
		{http.MethodDelete, "/api/files"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/batches"},
		{http.MethodGet, "/api/admin/storage"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s must be protected", p.method, p.path)
	}
}
