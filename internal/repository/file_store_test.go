package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-catalog-engine/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseProductLine(t *testing.T) {
	tests := []struct {
		line string
		want model.Product
	}{
		{
			"Apple iPhone 15 | 999.99 | 5 | Phones | Apple | 4.7",
			model.Product{Key: "apple iphone 15", Name: "Apple iPhone 15", Price: 999.99, Stock: 5, Category: "Phones", Brand: "Apple", Rating: 4.7},
		},
		{
			"Mouse|500|12|Accessories",
			model.Product{Key: "mouse", Name: "Mouse", Price: 500, Stock: 12, Category: "Accessories"},
		},
		{
			"Lamp|cheap|lots|Home|Ikea",
			model.Product{Key: "lamp", Name: "Lamp", Category: "Home", Brand: "Ikea"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseProductLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseProductLine("Mouse|500|12")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseCartLine(t *testing.T) {
	l, err := ParseCartLine("Apple iPhone 15|2")
	require.NoError(t, err)
	assert.Equal(t, model.CartLine{ProductName: "Apple iPhone 15", Quantity: 2}, l)

	_, err = ParseCartLine("Apple iPhone 15")
	assert.ErrorIs(t, err, ErrMalformedLine)
	_, err = ParseCartLine("Apple iPhone 15|two")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestProductFileRepoRoundTrip(t *testing.T) {
	path := writeFile(t, "products.txt", `# catalog
Apple iPhone 15|999|5|Phones|Apple|4.7

Boat Type-C Cable|9.5|40|Accessories|Boat
broken|line
Negative Stock|10|-4|Misc
   |10|4|Misc
`)
	repo := NewProductFileRepo(path, zap.NewNop().Sugar())

	products, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Apple iPhone 15", products[0].Name)
	assert.Equal(t, "Boat", products[1].Brand)

	products[0].Stock = 3
	require.NoError(t, repo.SaveAll(products))

	again, err := repo.FindAll()
	require.NoError(t, err)
	assert.Equal(t, products, again)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Apple iPhone 15|999|3|Phones|Apple|4.7\n")
}

func TestProductFileRepoMissingFile(t *testing.T) {
	repo := NewProductFileRepo(filepath.Join(t.TempDir(), "none.txt"), zap.NewNop().Sugar())
	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCartFileRepo(t *testing.T) {
	path := writeFile(t, "cart.txt", "Mouse|2\nbad\nLaptop|0\nLaptop|1\n")
	repo := NewCartFileRepo(path, zap.NewNop().Sugar())

	lines, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.CartLine{
		{ProductName: "Mouse", Quantity: 2},
		{ProductName: "Laptop", Quantity: 1},
	}, lines)

	require.NoError(t, repo.Save([]model.CartLine{{ProductName: "Lamp", Quantity: 3}}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Lamp|3\n", string(raw))

	require.NoError(t, repo.Save(nil))
	lines, err = repo.Load()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReceiptFileRepo(t *testing.T) {
	repo := NewReceiptFileRepo(filepath.Join(t.TempDir(), "receipts.jsonl"))

	empty, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := &model.Receipt{Total: 200, Lines: []model.ReceiptLine{{ProductName: "A", Quantity: 2, UnitPrice: 100, Subtotal: 200}}}
	first.ID = uuid.New()
	first.CreatedAt = time.Now()
	second := &model.Receipt{Total: 5}
	second.ID = uuid.New()

	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	receipts, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, second.ID, receipts[0].ID)
	assert.Equal(t, first.ID, receipts[1].ID)
	assert.Equal(t, 200.0, receipts[1].Total)
	assert.Equal(t, first.Lines[0].ProductName, receipts[1].Lines[0].ProductName)
}
