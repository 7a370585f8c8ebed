package catalog

import (
	"cmp"
	"slices"
	"strings"

	"go-catalog-engine/internal/model"
)

// Matches reports whether p satisfies every active predicate of f.
func Matches(p model.Product, f model.ProductFilters) bool {
	if f.MinPrice >= 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice >= 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinRating >= 0 && p.Rating < f.MinRating {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if len(f.Brands) > 0 && !slices.ContainsFunc(f.Brands, func(b string) bool {
		return strings.EqualFold(b, p.Brand)
	}) {
		return false
	}
	return true
}

// ApplyFilters keeps the records that match f, preserving input order.
func ApplyFilters(records []model.Product, f model.ProductFilters) []model.Product {
	out := make([]model.Product, 0, len(records))
	for _, p := range records {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records. SortNone and unknown keys
// keep the input order.
func Sort(records []model.Product, key model.SortKey) []model.Product {
	out := slices.Clone(records)

	var order func(a, b model.Product) int
	switch key {
	case model.SortPriceAsc:
		order = func(a, b model.Product) int { return cmp.Compare(a.Price, b.Price) }
	case model.SortPriceDesc:
		order = func(a, b model.Product) int { return cmp.Compare(b.Price, a.Price) }
	case model.SortNameAsc:
		order = func(a, b model.Product) int { return strings.Compare(a.Name, b.Name) }
	case model.SortStockDesc:
		order = func(a, b model.Product) int { return cmp.Compare(b.Stock, a.Stock) }
	default:
		return out
	}
	slices.SortStableFunc(out, order)
	return out
}
