package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/transport"
	"github.com/Skotchmaster/pet_place/internal/util"
)

type ChatHTTP struct {
	Svc     *service.ChatService
	Metrics *metrics.Metrics
}

func (h *ChatHTTP) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "chat.post_message").Logger()

	var req transport.ChatRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("chat_post_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "chat_post_error", err)
	}

	msg, err := h.Svc.PostMessage(ctx, authmw.CallerID(c), req.Message)
	if err != nil {
		return fail(l, "chat_post_error", err)
	}

	h.Metrics.ChatMessage("message")
	return c.JSON(http.StatusCreated, msg)
}

func (h *ChatHTTP) PostReply(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "chat.post_reply").Logger()

	var req transport.ChatReplyRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("chat_reply_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "chat_reply_error", err)
	}

	msg, err := h.Svc.PostReply(ctx, authmw.CallerID(c), req.UserID, req.Message)
	if err != nil {
		return fail(l, "chat_reply_error", err)
	}

	h.Metrics.ChatMessage("reply")
	l.Info().Uint("user_id", req.UserID).Msg("chat_reply_success")
	return c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the caller's thread, or the thread named by
// ?user_id= when the caller is an admin.
func (h *ChatHTTP) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "chat.get_messages").Logger()
	caller := authmw.CallerID(c)

	var (
		items []models.ChatMessage
		err   error
	)
	if raw := c.QueryParam("user_id"); raw != "" {
		target, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil || target == 0 {
			l.Warn().Str("user_id", raw).Int("status", 400).Msg("chat_list_error")
			return echo.NewHTTPError(http.StatusBadRequest, "user_id must be a positive integer")
		}
		items, err = h.Svc.ListMessagesFor(ctx, caller, uint(target))
	} else {
		items, err = h.Svc.ListMessages(ctx, caller)
	}
	if err != nil {
		return fail(l, "chat_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ChatHTTP) GetAllMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "chat.get_all").Logger()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	items, err := h.Svc.ListAll(ctx, authmw.CallerID(c), page, size)
	if err != nil {
		return fail(l, "chat_list_all_error", err)
	}
	return c.JSON(http.StatusOK, items)
}
