// Package cartstore holds the per-client cart and compare collections behind
// an explicit repository interface so the backing medium can be swapped: Redis
// in production, an in-memory map in tests.
package cartstore

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is a copy of a product taken when it was added. It is not a
// live reference; price and stock may go stale and are never reconciled.
type ProductSnapshot struct {
	ProductID  uint              `json:"product_id"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Price      decimal.Decimal   `json:"price"`
	SalePrice  decimal.Decimal   `json:"sale_price"`
	Stock      uint              `json:"stock"`
	Image      string            `json:"image"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type CartItem struct {
	ProductSnapshot
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// Store is keyed by an opaque client id issued by the server. A missing or
// unreadable collection reads as empty, never as a hard failure.
type Store interface {
	GetCart(ctx context.Context, clientID string) ([]CartItem, error)
	SetCart(ctx context.Context, clientID string, items []CartItem) error
	ClearCart(ctx context.Context, clientID string) error

	GetCompare(ctx context.Context, clientID string) ([]ProductSnapshot, error)
	// AddCompare deduplicates by product id: adding an already-present
	// product is a no-op and the first snapshot wins.
	AddCompare(ctx context.Context, clientID string, snapshot ProductSnapshot) error
	RemoveCompare(ctx context.Context, clientID string, productID uint) error
	ClearCompare(ctx context.Context, clientID string) error
}
