package service

import (
	"time"

	"go-catalog-engine/internal/repository"
)

// DailySales aggregates the receipts of one calendar day.
type DailySales struct {
	Date     string  `json:"date"`
	Receipts int     `json:"receipts"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
}

type DashboardService interface {
	GetSales(days int) ([]DailySales, error)
}

type dashboardService struct {
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

func NewDashboardService(receiptRepo repository.ReceiptRepository) DashboardService {
	return &dashboardService{receiptRepo: receiptRepo, now: time.Now}
}

// GetSales returns one entry per day that had checkouts within the last
// days days (today included), oldest first.
func (s *dashboardService) GetSales(days int) ([]DailySales, error) {
	endDate := s.now()
	y, m, d := endDate.Date()
	startDate := time.Date(y, m, d, 0, 0, 0, 0, endDate.Location()).AddDate(0, 0, -(days - 1))

	receipts, err := s.receiptRepo.FindAll()
	if err != nil {
		return nil, err
	}

	// receipts come newest first
	var results []DailySales
	for i := len(receipts) - 1; i >= 0; i-- {
		r := receipts[i]
		at := r.CreatedAt.In(endDate.Location())
		if at.Before(startDate) || at.After(endDate) {
			continue
		}
		date := at.Format(time.DateOnly)
		if n := len(results); n == 0 || results[n-1].Date != date {
			results = append(results, DailySales{Date: date})
		}
		day := &results[len(results)-1]
		day.Receipts++
		day.Revenue += r.Total
		for _, l := range r.Lines {
			day.Units += l.Quantity
		}
	}
	return results, nil
}
