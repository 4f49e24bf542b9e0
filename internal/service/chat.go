package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/util"
)

type ChatStore interface {
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, userID uint) ([]models.ChatMessage, error)
	ListAllMessages(ctx context.Context, offset, limit int) ([]models.ChatMessage, error)
}

type ChatService struct {
	Chat   ChatStore
	Users  UserStore
	Events Publisher
}

// PostMessage appends text to the caller's own thread.
func (s *ChatService) PostMessage(ctx context.Context, callerID uint, text string) (*models.ChatMessage, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if _, err := s.Users.GetUserByID(ctx, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: caller %d", ErrUnauthenticated, callerID)
		}
		return nil, fmt.Errorf("load caller: %w", err)
	}

	msg := &models.ChatMessage{
		UserID:   callerID,
		AuthorID: callerID,
		Message:  text,
	}
	if err := s.Chat.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	publish(ctx, s.Events, events.TopicChat, strconv.FormatUint(uint64(callerID), 10),
		events.New(events.ChatPosted, msg.ID, callerID, msg))
	return msg, nil
}

// PostReply appends an admin reply to the thread of targetID.
func (s *ChatService) PostReply(ctx context.Context, callerID, targetID uint, text string) (*models.ChatMessage, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" || targetID == 0 {
		return nil, fmt.Errorf("%w: message and userId are required", ErrValidation)
	}
	if _, err := s.Users.GetUserByID(ctx, targetID); err != nil {
		return nil, notFound(err, "user")
	}

	msg := &models.ChatMessage{
		UserID:       targetID,
		AuthorID:     callerID,
		Message:      text,
		IsAdminReply: true,
	}
	if err := s.Chat.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	publish(ctx, s.Events, events.TopicChat, strconv.FormatUint(uint64(targetID), 10),
		events.New(events.ChatReplyPosted, msg.ID, callerID, msg))
	return msg, nil
}

// ListMessages returns the caller's thread, newest first.
func (s *ChatService) ListMessages(ctx context.Context, callerID uint) ([]models.ChatMessage, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	items, err := s.Chat.ListMessages(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}

// ListMessagesFor lets an admin read the thread of userID.
func (s *ChatService) ListMessagesFor(ctx context.Context, callerID, userID uint) ([]models.ChatMessage, error) {
	if callerID == userID {
		return s.ListMessages(ctx, callerID)
	}
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}
	items, err := s.Chat.ListMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}

// ListAll returns one page of every thread, newest first. Admin only.
func (s *ChatService) ListAll(ctx context.Context, callerID uint, page, size int) ([]models.ChatMessage, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}
	offset, limit := util.Calculate(page, size)
	items, err := s.Chat.ListAllMessages(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list all messages: %w", err)
	}
	return items, nil
}
