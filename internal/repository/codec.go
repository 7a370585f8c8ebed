package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-catalog-engine/internal/model"
)

var ErrMalformedLine = errors.New("malformed line")

// ParseProductLine reads "name|price|stock|category[|brand[|rating]]". Fields
// are trimmed; a price, stock or rating that does not parse becomes zero.
func ParseProductLine(line string) (model.Product, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return model.Product{}, fmt.Errorf("%w: want at least 4 fields, got %d", ErrMalformedLine, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	p := model.Product{
		Name:     parts[0],
		Price:    parseFloat(parts[1]),
		Stock:    parseInt(parts[2]),
		Category: parts[3],
	}
	if len(parts) > 4 {
		p.Brand = parts[4]
	}
	if len(parts) > 5 {
		p.Rating = parseFloat(parts[5])
	}
	p.Normalize()
	return p, nil
}

func FormatProductLine(p model.Product) string {
	return strings.Join([]string{
		p.Name,
		FormatNumber(p.Price),
		strconv.Itoa(p.Stock),
		p.Category,
		p.Brand,
		FormatNumber(p.Rating),
	}, "|")
}

// ParseCartLine reads "name|quantity".
func ParseCartLine(line string) (model.CartLine, error) {
	name, qty, ok := strings.Cut(line, "|")
	if !ok {
		return model.CartLine{}, fmt.Errorf("%w: missing '|'", ErrMalformedLine)
	}
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return model.CartLine{}, fmt.Errorf("%w: quantity %q", ErrMalformedLine, qty)
	}
	return model.CartLine{ProductName: strings.TrimSpace(name), Quantity: n}, nil
}

func FormatCartLine(l model.CartLine) string {
	return l.ProductName + "|" + strconv.Itoa(l.Quantity)
}

// FormatNumber prints v with the fewest digits that round-trip.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
