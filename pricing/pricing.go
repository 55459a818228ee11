// Package pricing implements the quotation aggregator: an ordered list of
// line items and the derived totals over them. Totals are always recomputed
// from the lines, never stored.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrQuantity = errors.New("quantity must be at least 1")
	ErrPrice    = errors.New("unit price cannot be negative")
	ErrIndex    = errors.New("line index out of range")
)

// Line is one (product, quantity, unit price) tuple within a quotation or
// order. Name is a snapshot taken when the line was created.
type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Validate rejects non-positive quantities and negative unit prices.
func (l Line) Validate() error {
	if l.Quantity < 1 {
		return ErrQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrPrice
	}
	return nil
}

// Subtotal is quantity × unit price for a single line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums quantity × unit price over all lines. An empty sequence yields
// exactly zero. No currency rounding is applied.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Add validates the line and appends it.
func Add(lines []Line, line Line) ([]Line, error) {
	if err := line.Validate(); err != nil {
		return lines, err
	}
	return append(lines, line), nil
}

// Remove deletes exactly the line at index i, preserving the relative order
// of the remaining lines.
func Remove(lines []Line, i int) ([]Line, error) {
	if i < 0 || i >= len(lines) {
		return lines, ErrIndex
	}
	out := make([]Line, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	out = append(out, lines[i+1:]...)
	return out, nil
}

// UpdateQuantity changes one line's quantity in place.
func UpdateQuantity(lines []Line, i, quantity int) error {
	if i < 0 || i >= len(lines) {
		return ErrIndex
	}
	if quantity < 1 {
		return ErrQuantity
	}
	lines[i].Quantity = quantity
	return nil
}

// UpdatePrice changes one line's unit price in place.
func UpdatePrice(lines []Line, i int, price decimal.Decimal) error {
	if i < 0 || i >= len(lines) {
		return ErrIndex
	}
	if price.IsNegative() {
		return ErrPrice
	}
	lines[i].UnitPrice = price
	return nil
}
