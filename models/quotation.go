package models

import (
	"time"

	"techfix/pricing"

	"github.com/shopspring/decimal"
)

// Quotation stores only its line items and timestamps. The total is derived
// from the items at read time and is never persisted.
type Quotation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Items     []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuotationItem snapshots the product name and unit price at creation time;
// it is not a live reference. Position preserves line order.
type QuotationItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	QuotationID uint            `json:"quotation_id"`
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity" validate:"required,gte=1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2)" json:"unit_price"`
	Position    int             `json:"position"`
}

// Lines converts the persisted items into aggregator lines, in stored order.
func (q *Quotation) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(q.Items))
	for _, item := range q.Items {
		lines = append(lines, pricing.Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines
}

// Total recomputes the grand total from the line items.
func (q *Quotation) Total() decimal.Decimal {
	return pricing.Total(q.Lines())
}
