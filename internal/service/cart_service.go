package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-catalog-engine/internal/cart"
	"go-catalog-engine/internal/catalog"
	"go-catalog-engine/internal/events"
	"go-catalog-engine/internal/model"
	"go-catalog-engine/internal/repository"
)

type CartService interface {
	Restore() error
	Add(name string, qty int) (model.CartLine, error)
	Remove(name string) (model.CartLine, error)
	Contents() ([]cart.Entry, float64)
	Checkout() (*model.Receipt, error)
	Clear() error
	Save() error
	Receipts() ([]model.Receipt, error)
}

type cartService struct {
	mu          sync.Mutex
	cart        *cart.Cart
	catalog     *catalog.Catalog
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	receiptRepo repository.ReceiptRepository
	wsHub       *events.Hub
	logger      *zap.SugaredLogger
}

func NewCartService(
	c *catalog.Catalog,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	receiptRepo repository.ReceiptRepository,
	hub *events.Hub,
	logger *zap.SugaredLogger,
) CartService {
	return &cartService{
		cart:        cart.New(c),
		catalog:     c,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		receiptRepo: receiptRepo,
		wsHub:       hub,
		logger:      logger,
	}
}

// Restore loads the persisted cart. Lines for products that are no longer
// in the catalog are dropped.
func (s *cartService) Restore() error {
	lines, err := s.cartRepo.Load()
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if dropped := s.cart.Restore(lines); dropped > 0 {
		s.logger.Warnw("dropped stale cart lines", "dropped", dropped)
	}
	s.logger.Infow("cart restored", "lines", s.cart.Len())
	return nil
}

func (s *cartService) Add(name string, qty int) (model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.AddItem(name, qty)
	if err != nil {
		return line, err
	}
	s.save()
	return line, nil
}

func (s *cartService) Remove(name string) (model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.RemoveItem(name)
	if err != nil {
		return line, err
	}
	s.save()
	return line, nil
}

func (s *cartService) Contents() ([]cart.Entry, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cart.Entries()
	var total float64
	for _, e := range entries {
		total += e.Subtotal
	}
	return entries, total
}

// Checkout deducts the cart from stock, records a receipt, persists the new
// stock levels and announces them. Persistence failures after the stock was
// deducted are logged; the checkout itself stands.
func (s *cartService) Checkout() (*model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := make(map[string]int)
	for _, l := range s.cart.Items() {
		if p, ok := s.catalog.Get(l.ProductName); ok {
			before[p.Name] = p.Stock
		}
	}

	receipt, err := s.cart.Checkout()
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveAll(s.catalog.All()); err != nil {
		s.logger.Errorw("failed to save products after checkout", "receipt", receipt.ID, "error", err)
	}
	if err := s.receiptRepo.Create(receipt); err != nil {
		s.logger.Errorw("failed to record receipt", "receipt", receipt.ID, "error", err)
	}
	s.save()

	levels := make([]events.StockLevel, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		levels = append(levels, events.StockLevel{
			Name:     l.ProductName,
			OldStock: before[l.ProductName],
			NewStock: before[l.ProductName] - l.Quantity,
		})
	}
	e := events.NewStockEvent(events.ActionCheckout, fmt.Sprintf("checkout of %d line(s)", len(receipt.Lines)), levels...)
	e.ReceiptID = receipt.ID.String()
	e.Total = receipt.Total
	publish(s.wsHub, s.logger, e)

	s.logger.Infow("checkout completed", "receipt", receipt.ID, "lines", len(receipt.Lines), "total", receipt.Total)
	return receipt, nil
}

func (s *cartService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.cartRepo.Save(nil)
}

// Save persists the current cart lines.
func (s *cartService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartRepo.Save(s.cart.Items())
}

func (s *cartService) save() {
	if err := s.cartRepo.Save(s.cart.Items()); err != nil {
		s.logger.Errorw("failed to save cart", "error", err)
	}
}

func (s *cartService) Receipts() ([]model.Receipt, error) {
	return s.receiptRepo.FindAll()
}
