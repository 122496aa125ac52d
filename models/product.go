package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int              `json:"id"`
	CategoryID    int              `json:"category_id"`
	Category      *Category        `json:"category,omitempty"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	SKU           string           `json:"sku"`
	Images        []string         `json:"images"`
	IsFeatured    bool             `json:"is_featured"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// EffectivePrice is the price a buyer actually pays: the sale price when one
// is set and undercuts the regular price, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.Price) {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) OnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.Price)
}
