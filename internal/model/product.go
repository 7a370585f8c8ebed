package model

import "strings"

// Product is a single catalog record. The catalog owns every Product; other
// components keep only the name and re-resolve it.
type Product struct {
	BaseModel
	Key      string  `gorm:"column:lookup_key;type:varchar(255);uniqueIndex;not null" json:"-"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name" validate:"required,notblank"`
	Price    float64 `gorm:"default:0" json:"price" validate:"gte=0"`
	Stock    int     `gorm:"default:0" json:"stock" validate:"gte=0"`
	Category string  `gorm:"type:varchar(100);index" json:"category"`
	Brand    string  `gorm:"type:varchar(100)" json:"brand"`
	Rating   float64 `gorm:"default:0" json:"rating" validate:"gte=0"`
}

// KeyOf normalizes a product name into its catalog key.
func KeyOf(name string) string {
	return strings.ToLower(name)
}

// Normalize fills the lookup key from the name.
func (p *Product) Normalize() {
	p.Key = KeyOf(p.Name)
}
