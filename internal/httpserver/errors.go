package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Skotchmaster/pet_place/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler renders every error as {"error": "<message>"}.
// Unexpected errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(he.Code)
		} else {
			writeErr = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("write error response")
		}
	}
}

// toHTTPError maps service errors to status codes. ErrInvalidToken is
// checked before ErrUserNotFound so a token bound to a deleted user is a 401.
func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusBadRequest, "username or email already registered")
	case errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "user not found")
	case errors.Is(err, service.ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// fail logs a handler failure at a level matching its status and returns
// the error for the central handler to render.
func fail(l zerolog.Logger, event string, err error) error {
	he := toHTTPError(err)
	ev := l.Warn()
	if he.Code >= http.StatusInternalServerError {
		ev = l.Error()
	}
	ev.Err(err).Int("status", he.Code).Msg(event)
	return he
}
