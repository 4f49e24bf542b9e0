package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/transport"
	"github.com/Skotchmaster/pet_place/internal/util"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts runs the catalog query. The total is the size of the filtered
// set before pagination.
func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter) (int64, []models.Product, error) {
	base := applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	q := base.Session(&gorm.Session{}).Order("id ASC")
	if f.Page > 0 {
		offset, limit := util.Calculate(f.Page, f.Size)
		q = q.Offset(offset).Limit(limit)
	}

	items := make([]models.Product, 0)
	if err := q.Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// SaveProduct overwrites every column of an existing product.
func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	res := r.DB.WithContext(ctx).Model(prod).Select("*").Updates(prod)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
