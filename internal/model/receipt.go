package model

import "github.com/google/uuid"

// Receipt records one successful checkout.
type Receipt struct {
	BaseModel
	Total float64       `gorm:"not null" json:"total"` // Snapshot of price * quantity at checkout
	Lines []ReceiptLine `gorm:"foreignKey:ReceiptID" json:"lines"`
}

type ReceiptLine struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ReceiptID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Subtotal    float64   `gorm:"not null" json:"subtotal"`
}
