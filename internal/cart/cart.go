// Package cart implements the shopping cart and its checkout protocol.
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-catalog-engine/internal/catalog"
	"go-catalog-engine/internal/model"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Inventory is the part of the catalog the cart depends on.
type Inventory interface {
	Get(name string) (model.Product, bool)
	Transaction(fn func(tx *catalog.Tx) error) error
}

// Entry is a cart line priced against the live catalog.
type Entry struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// Cart holds at most one line per product. Lines keep only the product name;
// price and stock are always read from the catalog, so catalog changes made
// after an item was added are reflected in totals and checks.
type Cart struct {
	inventory Inventory
	lines     []model.CartLine
}

func New(inventory Inventory) *Cart {
	return &Cart{inventory: inventory}
}

func (c *Cart) find(name string) int {
	key := model.KeyOf(name)
	for i, l := range c.lines {
		if model.KeyOf(l.ProductName) == key {
			return i
		}
	}
	return -1
}

// AddItem adds qty units of name, merging into an existing line. The catalog
// must hold enough stock for the resulting line quantity. Stock itself is not
// touched until checkout.
func (c *Cart) AddItem(name string, qty int) (model.CartLine, error) {
	if qty <= 0 {
		return model.CartLine{}, ErrInvalidQuantity
	}
	p, ok := c.inventory.Get(name)
	if !ok {
		return model.CartLine{}, catalog.ErrProductNotFound
	}

	i := c.find(p.Name)
	want := qty
	if i >= 0 {
		want += c.lines[i].Quantity
	}
	if p.Stock < want {
		return model.CartLine{}, fmt.Errorf("%w for %s", catalog.ErrInsufficientStock, p.Name)
	}

	if i < 0 {
		c.lines = append(c.lines, model.CartLine{ProductName: p.Name, Quantity: qty})
		return c.lines[len(c.lines)-1], nil
	}
	c.lines[i].Quantity = want
	return c.lines[i], nil
}

// RemoveItem drops the whole line for name.
func (c *Cart) RemoveItem(name string) (model.CartLine, error) {
	i := c.find(name)
	if i < 0 {
		return model.CartLine{}, ErrItemNotFound
	}
	removed := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return removed, nil
}

// Entries prices every line at the current catalog price. Lines whose product
// has left the catalog are priced at zero.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.lines))
	for _, l := range c.lines {
		e := Entry{Name: l.ProductName, Quantity: l.Quantity}
		if p, ok := c.inventory.Get(l.ProductName); ok {
			e.UnitPrice = p.Price
			e.Subtotal = p.Price * float64(l.Quantity)
		}
		out = append(out, e)
	}
	return out
}

// Total sums live price * quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.Entries() {
		total += e.Subtotal
	}
	return total
}

// Checkout verifies every line against current stock and, only if all of
// them fit, deducts the quantities and empties the cart. On any failure the
// catalog and the cart are left as they were.
func (c *Cart) Checkout() (*model.Receipt, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipt := &model.Receipt{}
	err := c.inventory.Transaction(func(tx *catalog.Tx) error {
		// 1. Check every line before touching stock
		for _, l := range c.lines {
			p, ok := tx.Get(l.ProductName)
			if !ok {
				return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, l.ProductName)
			}
			if p.Stock < l.Quantity {
				return fmt.Errorf("%w for %s", catalog.ErrInsufficientStock, p.Name)
			}
			subtotal := p.Price * float64(l.Quantity)
			receipt.Lines = append(receipt.Lines, model.ReceiptLine{
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.Price,
				Subtotal:    subtotal,
			})
			receipt.Total += subtotal
		}

		// 2. Deduct
		for _, l := range c.lines {
			if _, err := tx.UpdateStock(l.ProductName, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	receipt.ID = uuid.New()
	receipt.CreatedAt = time.Now()
	for i := range receipt.Lines {
		receipt.Lines[i].ReceiptID = receipt.ID
	}
	c.Clear()
	return receipt, nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Restore replaces the cart contents with persisted lines. Lines naming a
// product the catalog does not know, or with a non-positive quantity, are
// dropped; repeated products are merged. It returns the number dropped.
func (c *Cart) Restore(lines []model.CartLine) int {
	c.lines = nil
	dropped := 0
	for _, l := range lines {
		p, ok := c.inventory.Get(l.ProductName)
		if !ok || l.Quantity <= 0 {
			dropped++
			continue
		}
		if i := c.find(p.Name); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, model.CartLine{ProductName: p.Name, Quantity: l.Quantity})
	}
	return dropped
}
