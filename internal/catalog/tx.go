package catalog

import "go-catalog-engine/internal/model"

// Tx stages stock changes made inside Catalog.Transaction. Reads through a Tx
// see the staged values.
type Tx struct {
	c      *Catalog
	staged map[string]int // key -> staged stock
}

// Transaction runs fn while holding the catalog lock. Stock changes made
// through tx are applied only if fn returns nil. fn must not call methods on
// the Catalog itself.
func (c *Catalog) Transaction(fn func(tx *Tx) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &Tx{c: c, staged: make(map[string]int)}
	if err := fn(tx); err != nil {
		return err
	}
	for key, stock := range tx.staged {
		if p, ok := c.products[key]; ok {
			p.Stock = stock
		}
	}
	return nil
}

func (tx *Tx) Get(name string) (model.Product, bool) {
	key := model.KeyOf(name)
	p, ok := tx.c.products[key]
	if !ok {
		return model.Product{}, false
	}
	out := *p
	if stock, ok := tx.staged[key]; ok {
		out.Stock = stock
	}
	return out, true
}

func (tx *Tx) AdjustStock(name string, delta int) (model.Product, error) {
	p, ok := tx.Get(name)
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	stock, err := applyDelta(p, delta)
	if err != nil {
		return p, err
	}
	p.Stock = stock
	tx.staged[p.Key] = p.Stock
	return p, nil
}

func (tx *Tx) UpdateStock(name string, qty int) (model.Product, error) {
	return tx.AdjustStock(name, -qty)
}
