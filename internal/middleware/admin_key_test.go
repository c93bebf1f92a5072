package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newAdminEcho(key string) *echo.Echo {
	e := echo.New()
	g := e.Group("/api", AdminKey(key))
	g.POST("/files", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	return e
}

func TestAdminKeyAcceptsMatchingHeader(t *testing.T) {
	e := newAdminEcho("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/files", nil)
	req.Header.Set(AdminKeyHeader, "s3cret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminKeyRejectsMissingOrWrongHeader(t *testing.T) {
	e := newAdminEcho("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/files", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/files", nil)
	req.Header.Set(AdminKeyHeader, "guess")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminKeyRefusesWhenUnconfigured(t *testing.T) {
	e := newAdminEcho("")

	req := httptest.NewRequest(http.MethodPost, "/api/files", nil)
	req.Header.Set(AdminKeyHeader, "anything")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
