package httpserver

import (
	"errors"
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/labstack/echo/v4"
)

// httpError maps the service sentinels onto HTTP status codes. Anything
// unrecognized is reported as an internal error without leaking the cause.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "backend unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
