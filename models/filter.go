package models

import "github.com/shopspring/decimal"

// Sort keys accepted by the catalog listing. Anything else falls back to
// SortNewest.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

type ProductFilter struct {
	CategoryIDs []int
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Search      string
	Sort        string
	Page        int
	Limit       int
}
