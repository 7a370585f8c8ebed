package repository

import (
	"go-catalog-engine/internal/model"

	"gorm.io/gorm"
)

// ReceiptRepository keeps the checkout history.
type ReceiptRepository interface {
	Create(receipt *model.Receipt) error
	FindAll() ([]model.Receipt, error)
}

type receiptRepo struct {
	db *gorm.DB
}

func NewReceiptRepo(db *gorm.DB) ReceiptRepository {
	return &receiptRepo{db}
}

func (r *receiptRepo) Create(receipt *model.Receipt) error {
	return r.db.Create(receipt).Error
}

// FindAll returns receipts newest first
func (r *receiptRepo) FindAll() ([]model.Receipt, error) {
	var receipts []model.Receipt
	err := r.db.Preload("Lines").Order("created_at DESC").Find(&receipts).Error
	return receipts, err
}

// Migrate creates or updates the tables used by the database store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Product{}, &model.CartLine{}, &model.Receipt{}, &model.ReceiptLine{})
}
