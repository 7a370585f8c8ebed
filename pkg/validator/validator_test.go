package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-catalog-engine/internal/model"
)

func TestCheckProduct(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		wantErr string
	}{
		{"valid", model.Product{Name: "Lamp", Price: 10, Stock: 1}, ""},
		{"free and out of stock", model.Product{Name: "Sticker"}, ""},
		{"missing name", model.Product{Price: 1}, "Product.Name"},
		{"blank name", model.Product{Name: "   "}, "notblank"},
		{"negative price", model.Product{Name: "Lamp", Price: -1}, "Product.Price"},
		{"negative stock", model.Product{Name: "Lamp", Stock: -3}, "Product.Stock"},
		{"negative rating", model.Product{Name: "Lamp", Rating: -0.5}, "Product.Rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(&tt.product)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCheckCartLine(t *testing.T) {
	assert.NoError(t, Check(&model.CartLine{ProductName: "Lamp", Quantity: 1}))
	assert.Error(t, Check(&model.CartLine{ProductName: "Lamp"}))
	assert.Error(t, Check(&model.CartLine{Quantity: 2}))
}
