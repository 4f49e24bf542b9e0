package repo

import (
	"context"

	"github.com/Skotchmaster/pet_place/internal/models"
)

func (r *GormRepo) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

// ListMessages returns the thread of userID, newest first.
func (r *GormRepo) ListMessages(ctx context.Context, userID uint) ([]models.ChatMessage, error) {
	items := make([]models.ChatMessage, 0)
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListAllMessages(ctx context.Context, offset, limit int) ([]models.ChatMessage, error) {
	items := make([]models.ChatMessage, 0, limit)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
