package repository

import (
	"go-catalog-engine/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	Load() ([]model.CartLine, error)
	Save(lines []model.CartLine) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

func (r *cartRepo) Load() ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.Order("id ASC").Find(&lines).Error
	return lines, err
}

// Save replaces the stored cart with lines
func (r *cartRepo) Save(lines []model.CartLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		rows := make([]model.CartLine, len(lines))
		for i, l := range lines {
			rows[i] = model.CartLine{ProductName: l.ProductName, Quantity: l.Quantity}
		}
		return tx.Create(&rows).Error
	})
}
