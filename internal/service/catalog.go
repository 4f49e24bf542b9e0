package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

const (
	defaultRating = 5
	maxRating     = 5
)

type ProductStore interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context, f transport.ProductFilter) (int64, []models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// Searcher runs full-text queries against the product index.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Products ProductStore
	Users    UserStore
	Events   Publisher
	Index    Indexer
	Searcher Searcher
}

func (s *CatalogService) List(ctx context.Context, f transport.ProductFilter) (int64, []models.Product, error) {
	total, items, err := s.Products.ListProducts(ctx, f)
	if err != nil {
		return 0, nil, fmt.Errorf("list products: %w", err)
	}
	for i := range items {
		normalize(&items[i])
	}
	return total, items, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	normalize(p)
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, callerID uint, req transport.ProductRequest) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}

	p := &models.Product{Rating: defaultRating}
	applyRequest(p, req)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.Products.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	logging.FromContext(ctx).Info().Uint("product_id", p.ID).Msg("product_created")
	s.afterWrite(ctx, events.ProductCreated, callerID, p)
	return p, nil
}

// Update replaces every editable field. Rating and reviews are kept.
func (s *CatalogService) Update(ctx context.Context, callerID, id uint, req transport.ProductRequest) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}

	p, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	applyRequest(p, req)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.Products.SaveProduct(ctx, p); err != nil {
		return nil, notFound(err, "product")
	}

	s.afterWrite(ctx, events.ProductUpdated, callerID, p)
	return p, nil
}

func (s *CatalogService) Patch(ctx context.Context, callerID, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return nil, err
	}

	p, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	applyPatch(p, req)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.Products.SaveProduct(ctx, p); err != nil {
		return nil, notFound(err, "product")
	}

	s.afterWrite(ctx, events.ProductUpdated, callerID, p)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, callerID, id uint) error {
	if _, err := requireAdmin(ctx, s.Users, callerID); err != nil {
		return err
	}

	if err := s.Products.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}

	logging.FromContext(ctx).Info().Uint("product_id", id).Msg("product_deleted")
	key := strconv.FormatUint(uint64(id), 10)
	publish(ctx, s.Events, events.TopicProducts, key, events.New(events.ProductDeleted, id, callerID, nil))
	if s.Index != nil {
		s.sideEffect(ctx, "index_remove_failed", func(ctx context.Context) error {
			return s.Index.Remove(ctx, id)
		})
	}
	return nil
}

// Search runs a full-text query when a search index is configured.
func (s *CatalogService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if s.Searcher == nil {
		return 0, nil, errors.New("search index is not configured")
	}
	total, items, err := s.Searcher.Search(ctx, query, from, size)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}
	for i := range items {
		normalize(&items[i])
	}
	return total, items, nil
}

func (s *CatalogService) afterWrite(ctx context.Context, typ string, callerID uint, p *models.Product) {
	publish(ctx, s.Events, events.TopicProducts, strconv.FormatUint(uint64(p.ID), 10),
		events.New(typ, p.ID, callerID, p))
	if s.Index != nil {
		s.sideEffect(ctx, "index_put_failed", func(ctx context.Context) error {
			return s.Index.Put(ctx, p)
		})
	}
}

func (s *CatalogService) sideEffect(ctx context.Context, event string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg(event)
	}
}

func applyRequest(p *models.Product, req transport.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	p.Category = strings.TrimSpace(req.Category)
	p.Images = pq.StringArray(req.Images)
	p.IsNew = req.IsNew
	p.IsOnSale = req.IsOnSale
	p.SalePrice = req.SalePrice
	p.Stock = req.Stock
	p.Sizes = pq.StringArray(req.Sizes)
	p.Dimensions = req.Dimensions
}

func applyPatch(p *models.Product, req transport.PatchProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Images != nil {
		p.Images = pq.StringArray(*req.Images)
	}
	if req.IsNew != nil {
		p.IsNew = *req.IsNew
	}
	if req.IsOnSale != nil {
		p.IsOnSale = *req.IsOnSale
	}
	if req.SalePrice != nil {
		p.SalePrice = req.SalePrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Sizes != nil {
		p.Sizes = pq.StringArray(*req.Sizes)
	}
	if req.Dimensions != nil {
		p.Dimensions = *req.Dimensions
	}
}

// validateProduct enforces the write rules and clears the sale price of a
// product that is not on sale.
func validateProduct(p *models.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case !positive(p.Price):
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	case !models.IsCategory(p.Category):
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	case p.Rating < 0 || p.Rating > maxRating:
		return fmt.Errorf("%w: rating out of range", ErrValidation)
	}

	if !p.IsOnSale {
		p.SalePrice = nil
	} else if p.SalePrice == nil || !positive(*p.SalePrice) || *p.SalePrice >= p.Price {
		return fmt.Errorf("%w: sale price must be positive and below price", ErrValidation)
	}

	normalize(p)
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// normalize keeps list fields as empty arrays in JSON.
func normalize(p *models.Product) {
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	if p.Sizes == nil {
		p.Sizes = pq.StringArray{}
	}
}
