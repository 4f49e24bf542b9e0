package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

type AuthHTTP struct {
	Svc     *service.AuthService
	Metrics *metrics.Metrics
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "auth.register").Logger()

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("register_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "register_error", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_error", err)
	}

	h.Metrics.Registered()
	l.Info().Uint("user_id", res.User.ID).Msg("register_success")
	return c.JSON(http.StatusCreated, authResponse(res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "auth.login").Logger()

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("login_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.Metrics.Login("not_found")
	case errors.Is(err, service.ErrInvalidCredential):
		h.Metrics.Login("invalid_credential")
	case err == nil:
		h.Metrics.Login("success")
	}
	if err != nil {
		return fail(l.With().Str("username", req.Username).Logger(), "login_error", err)
	}

	l.Info().Uint("user_id", res.User.ID).Msg("login_success")
	return c.JSON(http.StatusOK, authResponse(res))
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "auth.verify").Logger()

	raw, ok := authmw.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		l.Warn().Int("status", 401).Msg("verify_error")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.Svc.Verify(ctx, raw)
	if err != nil {
		return fail(l, "verify_error", err)
	}
	return c.JSON(http.StatusOK, transport.VerifyResponse{User: user})
}

// Logout only acknowledges; tokens are discarded by the client.
func (h *AuthHTTP) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Logged out"})
}

func authResponse(res *service.AuthResult) transport.AuthResponse {
	return transport.AuthResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		ID:        res.User.ID,
		Username:  res.User.Username,
		Email:     res.User.Email,
		IsAdmin:   res.User.IsAdmin,
	}
}
