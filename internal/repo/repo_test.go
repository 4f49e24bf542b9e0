package repo

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pet_place/internal/db"
	"github.com/Skotchmaster/pet_place/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return New(gdb)
}

func ptr[T any](v T) *T { return &v }

func seedProducts(t *testing.T, r *GormRepo) []models.Product {
	t.Helper()

	products := []models.Product{
		{Name: "Ошейник Collar", Price: 10, Category: "Собаки", Rating: 5, Images: pq.StringArray{"a.png", "b.png"}},
		{Name: "Когтеточка", Price: 45, Category: "Кошки", Rating: 4.2, IsNew: true},
		{Name: "Dog Bed 100%", Price: 80, Category: "Собаки", Rating: 3.5, IsOnSale: true, SalePrice: ptr(60.0)},
		{Name: "Клетка для попугая", Price: 120, Category: "Птицы", Rating: 4.8},
		{Name: "Аквариум", Price: 200, Category: "Рыбы", Rating: 4.9, IsOnSale: true, SalePrice: ptr(150.0), IsNew: true},
	}
	ctx := context.Background()
	for i := range products {
		require.NoError(t, r.CreateProduct(ctx, &products[i]))
	}
	return products
}
