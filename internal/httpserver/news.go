package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pet_place/internal/logging"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

type NewsHTTP struct {
	Svc *service.NewsService
}

func (h *NewsHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "news.create").Logger()

	var req transport.NewsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("news_create_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "news_create_error", err)
	}

	item, err := h.Svc.Create(ctx, authmw.CallerID(c), req)
	if err != nil {
		return fail(l, "news_create_error", err)
	}

	l.Info().Uint("news_id", item.ID).Msg("news_create_success")
	return c.JSON(http.StatusCreated, item)
}

func (h *NewsHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Svc.List(ctx)
	if err != nil {
		l := logging.FromContext(ctx).With().Str("handler", "news.list").Logger()
		return fail(l, "news_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NewsHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "news.delete").Logger()

	id, err := parseID(c, l, "news_delete_error")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, authmw.CallerID(c), id); err != nil {
		return fail(l, "news_delete_error", err)
	}

	l.Info().Uint("news_id", id).Msg("news_delete_success")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "News deleted"})
}
