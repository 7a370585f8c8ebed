package model

// CartLine is one (product, quantity) entry of the shopping cart.
type CartLine struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ProductName string `gorm:"type:varchar(255);not null" json:"product_name" validate:"required,notblank"`
	Quantity    int    `gorm:"not null" json:"quantity" validate:"required,gt=0"` // Qty harus > 0
}
