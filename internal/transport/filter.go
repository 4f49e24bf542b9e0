package transport

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Skotchmaster/pet_place/internal/models"
)

// ProductFilter is the catalog query. Nil pointers and false flags mean the
// predicate is absent. Page 0 means unpaged.
type ProductFilter struct {
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Category   *string
	OnSaleOnly bool
	NewOnly    bool
	Page       int
	Size       int
}

// ParseProductFilter reads the catalog query string. Empty values are
// treated as absent; malformed numbers and booleans are rejected.
func ParseProductFilter(q url.Values) (ProductFilter, error) {
	var (
		f   ProductFilter
		err error
	)

	if v := strings.TrimSpace(q.Get("search")); v != "" {
		f.Search = &v
	}
	if f.MinPrice, err = optFloat(q, "minPrice"); err != nil {
		return ProductFilter{}, err
	}
	if f.MaxPrice, err = optFloat(q, "maxPrice"); err != nil {
		return ProductFilter{}, err
	}
	rating := "rating"
	if q.Get(rating) == "" {
		rating = "minRating"
	}
	if f.MinRating, err = optFloat(q, rating); err != nil {
		return ProductFilter{}, err
	}
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		if c, ok := models.CategoryBySlug(v); ok {
			v = c.Name
		}
		f.Category = &v
	}
	if f.OnSaleOnly, err = optBool(q, "isOnSale"); err != nil {
		return ProductFilter{}, err
	}
	if f.NewOnly, err = optBool(q, "isNew"); err != nil {
		return ProductFilter{}, err
	}
	if f.Page, err = optInt(q, "page"); err != nil {
		return ProductFilter{}, err
	}
	if f.Size, err = optInt(q, "size"); err != nil {
		return ProductFilter{}, err
	}

	return f, nil
}

func optFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

func optBool(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return v, nil
}

func optInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return v, nil
}
