package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/printfolio/printfolio/internal/catalog"
	"github.com/printfolio/printfolio/internal/orders"
)

// JSONError is the error payload returned by every endpoint
type JSONError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSONMessage is the success payload for mutation endpoints
type JSONMessage struct {
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, JSONError{Error: http.StatusText(status), Message: message})
}

// serviceError maps service-layer errors onto HTTP statuses. Validation
// failures become 400, missing items 404, everything else a generic 500 with
// the original message attached for diagnostics.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidName):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, orders.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
}
