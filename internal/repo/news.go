package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/models"
)

func (r *GormRepo) CreateNews(ctx context.Context, item *models.NewsItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	items := make([]models.NewsItem, 0)
	if err := r.DB.WithContext(ctx).
		Order("date DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) DeleteNews(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.NewsItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
