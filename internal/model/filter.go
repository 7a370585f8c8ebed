package model

import (
	"strconv"
	"strings"
)

// Inactive is the bound value that disables a numeric filter.
const Inactive = -1.0

// SortKey selects the ordering applied to a product listing.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortStockDesc SortKey = "stock_desc"
)

// ParseSortKey returns SortNone for anything it does not recognize.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortStockDesc:
		return k
	default:
		return SortNone
	}
}

// ProductFilters narrows a product listing. Numeric bounds are inclusive and
// inactive when negative; Category and Brands are inactive when empty.
type ProductFilters struct {
	MinPrice  float64  `json:"min_price"`
	MaxPrice  float64  `json:"max_price"`
	MinRating float64  `json:"min_rating"`
	Category  string   `json:"category"`
	Brands    []string `json:"brands"`
	Sort      SortKey  `json:"sort"`
}

// NoFilters returns filters with every predicate inactive.
func NoFilters() ProductFilters {
	return ProductFilters{
		MinPrice:  Inactive,
		MaxPrice:  Inactive,
		MinRating: Inactive,
	}
}

// ParseFilters reads a "key=value;key=value" filter string such as
//
//	min_price=50;max_price=100;brand=Acme,Sony;category=Phones;sort=price_asc
//
// Unknown keys and pieces without '=' are ignored. A numeric value that does
// not parse leaves that bound inactive.
func ParseFilters(s string) ProductFilters {
	f := NoFilters()
	for _, piece := range strings.Split(s, ";") {
		key, val, ok := strings.Cut(piece, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "min_price":
			f.MinPrice = parseBound(val)
		case "max_price":
			f.MaxPrice = parseBound(val)
		case "min_rating":
			f.MinRating = parseBound(val)
		case "brand", "brands":
			for _, b := range strings.Split(val, ",") {
				if b = strings.TrimSpace(b); b != "" {
					f.Brands = append(f.Brands, b)
				}
			}
		case "category":
			f.Category = val
		case "sort":
			f.Sort = ParseSortKey(val)
		}
	}
	return f
}

func parseBound(val string) float64 {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Inactive
	}
	return v
}
