package repo

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/transport"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyProductFilter narrows q by every present field of f. Predicates are
// joined with AND.
func applyProductFilter(q *gorm.DB, f transport.ProductFilter) *gorm.DB {
	if f.Search != nil {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*f.Search)) + "%"
		q = q.Where(`search_name LIKE ? ESCAPE '\'`, pattern)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.OnSaleOnly {
		q = q.Where("is_on_sale = ? AND sale_price IS NOT NULL", true)
	}
	if f.NewOnly {
		q = q.Where("is_new = ?", true)
	}
	return q
}
