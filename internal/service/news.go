package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

type NewsStore interface {
	CreateNews(ctx context.Context, item *models.NewsItem) error
	ListNews(ctx context.Context) ([]models.NewsItem, error)
	DeleteNews(ctx context.Context, id uint) error
}

type NewsService struct {
	News   NewsStore
	Users  UserStore
	Events Publisher
}

func (s *NewsService) Create(ctx context.Context, callerID uint, req transport.NewsRequest) (*models.NewsItem, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	item := &models.NewsItem{
		Title:   title,
		Content: content,
		Image:   strings.TrimSpace(req.Image),
	}
	if err := s.News.CreateNews(ctx, item); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	publish(ctx, s.Events, events.TopicNews, strconv.FormatUint(uint64(item.ID), 10),
		events.New(events.NewsPublished, item.ID, callerID, item))
	return item, nil
}

func (s *NewsService) List(ctx context.Context) ([]models.NewsItem, error) {
	items, err := s.News.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *NewsService) Delete(ctx context.Context, callerID, id uint) error {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return err
	}
	if err := s.News.DeleteNews(ctx, id); err != nil {
		return notFound(err, "news item")
	}

	publish(ctx, s.Events, events.TopicNews, strconv.FormatUint(uint64(id), 10),
		events.New(events.NewsDeleted, id, callerID, nil))
	return nil
}
