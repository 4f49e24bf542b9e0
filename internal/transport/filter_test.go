package transport

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductFilter_Empty(t *testing.T) {
	f, err := ParseProductFilter(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, ProductFilter{}, f)
}

func TestParseProductFilter_AllFields(t *testing.T) {
	q := url.Values{}
	q.Set("search", " Collar ")
	q.Set("minPrice", "5")
	q.Set("maxPrice", "99.5")
	q.Set("rating", "4")
	q.Set("category", "Собаки")
	q.Set("isOnSale", "1")
	q.Set("isNew", "true")
	q.Set("page", "2")
	q.Set("size", "10")

	f, err := ParseProductFilter(q)
	require.NoError(t, err)

	require.NotNil(t, f.Search)
	assert.Equal(t, "Collar", *f.Search)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 5.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 99.5, *f.MaxPrice)
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 4.0, *f.MinRating)
	require.NotNil(t, f.Category)
	assert.Equal(t, "Собаки", *f.Category)
	assert.True(t, f.OnSaleOnly)
	assert.True(t, f.NewOnly)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.Size)
}

func TestParseProductFilter_CategorySlugAndMinRatingAlias(t *testing.T) {
	q := url.Values{}
	q.Set("category", "small_pets")
	q.Set("minRating", "3.5")
	q.Set("isOnSale", "false")

	f, err := ParseProductFilter(q)
	require.NoError(t, err)
	require.NotNil(t, f.Category)
	assert.Equal(t, "Грызуны", *f.Category)
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 3.5, *f.MinRating)
	assert.False(t, f.OnSaleOnly)
}

func TestParseProductFilter_UnknownCategoryKept(t *testing.T) {
	f, err := ParseProductFilter(url.Values{"category": {"Рептилии"}})
	require.NoError(t, err)
	require.NotNil(t, f.Category)
	assert.Equal(t, "Рептилии", *f.Category)
}

func TestParseProductFilter_Malformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "min price text", key: "minPrice", val: "cheap"},
		{name: "max price nan", key: "maxPrice", val: "NaN"},
		{name: "rating inf", key: "rating", val: "+Inf"},
		{name: "on sale word", key: "isOnSale", val: "yes"},
		{name: "negative page", key: "page", val: "-1"},
		{name: "size text", key: "size", val: "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProductFilter(url.Values{tt.key: {tt.val}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
