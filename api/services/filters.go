package services

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/rs/zerolog"
)

// ProductFilter narrows a product listing. Nil fields are not applied.
type ProductFilter struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
}

// ParseProductFilter reads the category, minPrice and maxPrice query
// parameters. Empty values are absent. A price that does not parse as a
// finite number is logged and ignored rather than matching nothing.
func ParseProductFilter(ctx context.Context, query url.Values) ProductFilter {
	var f ProductFilter

	if category := query.Get("category"); category != "" {
		f.Category = &category
	}
	f.MinPrice = parsePrice(ctx, query, "minPrice")
	f.MaxPrice = parsePrice(ctx, query, "maxPrice")
	return f
}

func parsePrice(ctx context.Context, query url.Values, name string) *float64 {
	raw := query.Get(name)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		zerolog.Ctx(ctx).Warn().Str("param", name).Str("value", raw).
			Msg("Ignoring price filter that is not a number")
		return nil
	}
	return &v
}

// Apply returns the products matching every set filter. The result is never nil.
func (f ProductFilter) Apply(products []models.Record) []models.Record {
	out := make([]models.Record, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p passes the category, minimum and maximum price
// filters. A product without a numeric price fails any price filter.
func (f ProductFilter) Matches(p models.Record) bool {
	if f.Category != nil {
		category, ok := p["category"].(string)
		if !ok || category != *f.Category {
			return false
		}
	}

	if f.MinPrice == nil && f.MaxPrice == nil {
		return true
	}

	price, ok := p.Number("price")
	if !ok {
		return false
	}
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}
