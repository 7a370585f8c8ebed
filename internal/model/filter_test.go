package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ProductFilters
	}{
		{"empty", "", NoFilters()},
		{
			"everything",
			"min_price=50; max_price=100;brand=Acme, Sony;category=Phones;min_rating=4;sort=PRICE_DESC",
			ProductFilters{MinPrice: 50, MaxPrice: 100, MinRating: 4, Category: "Phones", Brands: []string{"Acme", "Sony"}, Sort: SortPriceDesc},
		},
		{
			"bad numbers stay inactive",
			"min_price=cheap;max_price=;colour=red;nonsense",
			NoFilters(),
		},
		{
			"brands alias and blanks",
			"brands=,Boat,,",
			ProductFilters{MinPrice: Inactive, MaxPrice: Inactive, MinRating: Inactive, Brands: []string{"Boat"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilters(tt.in))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortNameAsc, ParseSortKey(" name_asc "))
	assert.Equal(t, SortStockDesc, ParseSortKey("Stock_Desc"))
	assert.Equal(t, SortNone, ParseSortKey("rating"))
}

func TestKeyOf(t *testing.T) {
	p := Product{Name: "Apple iPhone 15"}
	p.Normalize()
	assert.Equal(t, "apple iphone 15", p.Key)
	assert.Equal(t, p.Key, KeyOf("APPLE IPHONE 15"))
}
