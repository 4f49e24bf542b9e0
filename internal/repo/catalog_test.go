package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

func ids(items []models.Product) []uint {
	out := make([]uint, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestCreateProduct_DerivedColumns(t *testing.T) {
	r := newTestRepo(t)
	seeded := seedProducts(t, r)

	got, err := r.GetProduct(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a.png", got.Image)
	assert.Equal(t, []string{"a.png", "b.png"}, []string(got.Images))
	assert.Equal(t, "ошейник collar", got.SearchName)
}

func TestListProducts_EmptyFilterReturnsAllInIDOrder(t *testing.T) {
	r := newTestRepo(t)
	seeded := seedProducts(t, r)

	total, items, err := r.ListProducts(context.Background(), transport.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(seeded)), total)
	assert.Equal(t, ids(seeded), ids(items))
}

func TestListProducts_PredicatesHoldForEveryResult(t *testing.T) {
	r := newTestRepo(t)
	seeded := seedProducts(t, r)

	filters := map[string]transport.ProductFilter{
		"search":     {Search: ptr("COLLAR")},
		"cyrillic":   {Search: ptr("аКВА")},
		"price":      {MinPrice: ptr(20.0), MaxPrice: ptr(150.0)},
		"rating":     {MinRating: ptr(4.5)},
		"category":   {Category: ptr("Собаки")},
		"on sale":    {OnSaleOnly: true},
		"new":        {NewOnly: true},
		"combined":   {Category: ptr("Собаки"), MaxPrice: ptr(50.0)},
		"wildcard":   {Search: ptr("100%")},
		"underscore": {Search: ptr("_")},
	}

	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			total, items, err := r.ListProducts(context.Background(), f)
			require.NoError(t, err)
			assert.Equal(t, int64(len(items)), total)

			var want []uint
			for _, p := range seeded {
				if matches(p, f) {
					want = append(want, p.ID)
				}
			}
			if want == nil {
				want = []uint{}
			}
			assert.Equal(t, want, ids(items))
		})
	}
}

func matches(p models.Product, f transport.ProductFilter) bool {
	if f.Search != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*f.Search)) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.OnSaleOnly && !(p.IsOnSale && p.SalePrice != nil) {
		return false
	}
	if f.NewOnly && !p.IsNew {
		return false
	}
	return true
}

func TestListProducts_UnknownCategoryIsEmpty(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)

	total, items, err := r.ListProducts(context.Background(), transport.ProductFilter{Category: ptr("Рептилии")})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListProducts_OnSaleWithoutSalePriceExcluded(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	broken := models.Product{Name: "Broken sale", Price: 30, Category: "Кошки", IsOnSale: true}
	require.NoError(t, r.CreateProduct(ctx, &broken))
	proper := models.Product{Name: "Proper sale", Price: 30, Category: "Кошки", IsOnSale: true, SalePrice: ptr(20.0)}
	require.NoError(t, r.CreateProduct(ctx, &proper))

	_, items, err := r.ListProducts(ctx, transport.ProductFilter{OnSaleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{proper.ID}, ids(items))
}

func TestListProducts_Pagination(t *testing.T) {
	r := newTestRepo(t)
	seeded := seedProducts(t, r)

	total, items, err := r.ListProducts(context.Background(), transport.ProductFilter{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(len(seeded)), total)
	assert.Equal(t, []uint{seeded[2].ID, seeded[3].ID}, ids(items))
}

func TestSaveProduct(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	seeded := seedProducts(t, r)

	p := seeded[2]
	p.Name = "Dog Sofa"
	p.IsOnSale = false
	p.SalePrice = nil
	require.NoError(t, r.SaveProduct(ctx, &p))

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dog Sofa", got.Name)
	assert.Equal(t, "dog sofa", got.SearchName)
	assert.False(t, got.IsOnSale)
	assert.Nil(t, got.SalePrice)

	missing := models.Product{ID: 9999, Name: "ghost", Price: 1, Category: "Собаки"}
	assert.ErrorIs(t, r.SaveProduct(ctx, &missing), gorm.ErrRecordNotFound)
}

func TestDeleteProduct_RepeatedDeleteIsNotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	seeded := seedProducts(t, r)

	require.NoError(t, r.DeleteProduct(ctx, seeded[0].ID))
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, r.DeleteProduct(ctx, seeded[0].ID), gorm.ErrRecordNotFound)
	}
	_, err := r.GetProduct(ctx, seeded[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
