package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry is the session-scoped quantity record for one product. Entries
// live in the cart store only and are never persisted to Postgres.
type CartEntry struct {
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Cart maps product id to its entry for one session.
type Cart map[int]CartEntry

// CartLine is a cart entry resolved against the live product.
type CartLine struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
