package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `json:"name" validate:"required"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `gorm:"type:decimal(18,2)" json:"price"`
	SalePrice   decimal.Decimal   `gorm:"type:decimal(18,2)" json:"sale_price"`
	Stock       uint              `json:"stock"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Attributes  map[string]string `gorm:"type:text;serializer:json" json:"attributes,omitempty"`
	SupplierID  uint              `json:"supplier_id"`
	Supplier    Supplier          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// EffectivePrice is the price a buyer actually pays: the sale price when one
// is set, the list price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}
