package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-engine/internal/model"
)

type receiptStub []model.Receipt

func (r receiptStub) Create(*model.Receipt) error       { return nil }
func (r receiptStub) FindAll() ([]model.Receipt, error) { return r, nil }

func receiptAt(at time.Time, total float64, qty ...int) model.Receipt {
	r := model.Receipt{Total: total}
	r.CreatedAt = at
	for _, q := range qty {
		r.Lines = append(r.Lines, model.ReceiptLine{Quantity: q})
	}
	return r
}

func TestGetSalesGroupsByDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	// newest first, as repositories return them
	repo := receiptStub{
		receiptAt(now.Add(-time.Hour), 30, 1, 2),
		receiptAt(now.Add(-2*time.Hour), 20, 4),
		receiptAt(now.AddDate(0, 0, -2), 100, 5),
		receiptAt(now.AddDate(0, 0, -9), 999, 1),
	}
	svc := &dashboardService{receiptRepo: repo, now: func() time.Time { return now }}

	got, err := svc.GetSales(7)
	require.NoError(t, err)
	assert.Equal(t, []DailySales{
		{Date: "2024-03-08", Receipts: 1, Units: 5, Revenue: 100},
		{Date: "2024-03-10", Receipts: 2, Units: 7, Revenue: 50},
	}, got)

	got, err = svc.GetSales(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-10", got[0].Date)
}
