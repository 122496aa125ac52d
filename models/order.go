package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentBkash PaymentMethod = "bkash"
	PaymentNagad PaymentMethod = "nagad"
)

// statusTransitions is the only set of admin-triggered status edges the
// workflow accepts. delivered and cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := statusTransitions[s]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(raw); s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return s, nil
	}
	return "", fmt.Errorf("unknown payment status %q", raw)
}

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(raw); m {
	case PaymentCash, PaymentCard, PaymentBkash, PaymentNagad:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", raw)
}

// CanTransitionTo reports whether the status workflow allows moving from s to
// next. Self-transitions are rejected along with everything not in the table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          int             `json:"user_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	BillingAddress  string          `json:"billing_address"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots a purchased product line. unit_price is fixed at
// checkout time and never follows later product price changes.
type OrderItem struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}
