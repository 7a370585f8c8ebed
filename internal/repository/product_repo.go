package repository

import (
	"go-catalog-engine/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository loads and saves the full product set. The catalog is the
// live copy; repositories only see bulk snapshots.
type ProductRepository interface {
	FindAll() ([]model.Product, error)
	SaveAll(products []model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("lookup_key ASC").Find(&products).Error
	return products, err
}

// SaveAll upserts every product on its lookup key
func (r *productRepo) SaveAll(products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	batch := make([]model.Product, len(products))
	for i, p := range products {
		p.Normalize()
		batch[i] = p
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lookup_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "stock", "category", "brand", "rating", "updated_at"}),
		}).Create(&batch).Error
	})
}
