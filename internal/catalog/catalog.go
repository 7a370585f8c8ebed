// Package catalog is the authoritative in-memory store of product records.
//
// Every record is keyed by its lowercased name. Stock never goes negative: a
// mutation that would break that is rejected and leaves the record untouched.
// Multi-step updates go through Transaction, which applies all staged stock
// changes or none of them.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"go-catalog-engine/internal/model"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRecord     = errors.New("invalid product record")
	ErrStockOverflow     = errors.New("stock change out of range")
)

type Catalog struct {
	mu       sync.Mutex
	products map[string]*model.Product
}

func New() *Catalog {
	return &Catalog{products: make(map[string]*model.Product)}
}

// Replace discards the current contents and loads records. When two records
// share a case-insensitive name the later one wins. Records with a blank name
// or a negative price or stock are skipped; Replace returns how many.
func (c *Catalog) Replace(records []model.Product) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = make(map[string]*model.Product, len(records))
	skipped := 0
	for _, r := range records {
		if _, err := c.put(r); err != nil {
			skipped++
		}
	}
	return skipped
}

// Put inserts or overwrites a single record.
func (c *Catalog) Put(record model.Product) (model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.put(record)
	if err != nil {
		return model.Product{}, err
	}
	return *p, nil
}

func (c *Catalog) put(record model.Product) (*model.Product, error) {
	switch {
	case strings.TrimSpace(record.Name) == "":
		return nil, fmt.Errorf("%w: blank name", ErrInvalidRecord)
	case record.Stock < 0:
		return nil, fmt.Errorf("%w: negative stock for %s", ErrInvalidRecord, record.Name)
	case record.Price < 0:
		return nil, fmt.Errorf("%w: negative price for %s", ErrInvalidRecord, record.Name)
	}
	record.Normalize()
	p := record
	c.products[p.Key] = &p
	return &p, nil
}

// applyDelta returns stock+delta, rejecting results below zero or beyond int.
func applyDelta(p model.Product, delta int) (int, error) {
	if delta > 0 && p.Stock > math.MaxInt-delta {
		return p.Stock, fmt.Errorf("%w for %s", ErrStockOverflow, p.Name)
	}
	if p.Stock+delta < 0 {
		return p.Stock, fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
	}
	return p.Stock + delta, nil
}

// Get looks a product up by name, ignoring case. The returned value is a copy.
func (c *Catalog) Get(name string) (model.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[model.KeyOf(name)]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// All returns a copy of every record ordered by key.
func (c *Catalog) All() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(func(*model.Product) bool { return true })
}

// ByCategory returns the records whose category matches, ignoring case.
func (c *Catalog) ByCategory(category string) []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(func(p *model.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

func (c *Catalog) snapshot(keep func(*model.Product) bool) []model.Product {
	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b model.Product) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.products)
}

// AdjustStock adds delta (which may be negative) to the stock of name. It
// fails without changing anything when the result would drop below zero or
// overflow.
func (c *Catalog) AdjustStock(name string, delta int) (model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[model.KeyOf(name)]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	stock, err := applyDelta(*p, delta)
	if err != nil {
		return *p, err
	}
	p.Stock = stock
	return *p, nil
}

// UpdateStock removes qty units of name from stock.
func (c *Catalog) UpdateStock(name string, qty int) (model.Product, error) {
	return c.AdjustStock(name, -qty)
}

// ApplyFilters is the catalog-facing form of the package level ApplyFilters.
func (c *Catalog) ApplyFilters(records []model.Product, f model.ProductFilters) []model.Product {
	return ApplyFilters(records, f)
}

// Stats summarizes the stock position of the catalog.
type Stats struct {
	TotalProducts  int     `json:"total_products"`
	LowStockCount  int     `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

// Stats counts records with stock below lowStock and sums price * stock.
func (c *Catalog) Stats(lowStock int) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{TotalProducts: len(c.products)}
	for _, p := range c.products {
		if p.Stock < lowStock {
			s.LowStockCount++
		}
		s.TotalValuation += p.Price * float64(p.Stock)
	}
	return s
}
