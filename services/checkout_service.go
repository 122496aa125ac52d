package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shophub/models"
)

var ErrCartEmpty = errors.New("cart is empty")

const (
	ExcludeReasonInsufficientStock = "insufficient_stock"
	ExcludeReasonUnavailable       = "product_unavailable"
)

// QuoteLine is a cart entry that will make it into the order.
type QuoteLine struct {
	Product   models.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ExcludedLine is a cart entry that cannot be fulfilled, with the reason the
// buyer sees before committing.
type ExcludedLine struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Reason      string `json:"reason"`
}

// Quote is the checkout calculation over a cart: what is included, what is
// excluded and why, and the resulting totals.
type Quote struct {
	Included []QuoteLine     `json:"included"`
	Excluded []ExcludedLine  `json:"excluded"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ErrStockChanged rejects placement while some cart entries cannot be
// fulfilled, so the buyer is never silently shipped a partial order.
type ErrStockChanged struct {
	Excluded []ExcludedLine
}

func (e *ErrStockChanged) Error() string {
	names := make([]string, 0, len(e.Excluded))
	for _, line := range e.Excluded {
		name := line.ProductName
		if name == "" {
			name = fmt.Sprintf("product %d", line.ProductID)
		}
		names = append(names, name)
	}
	return "some items are no longer available: " + strings.Join(names, ", ")
}

// OrderStore persists an order atomically. Implemented by
// repositories.OrderRepository.
type OrderStore interface {
	Place(ctx context.Context, order *models.Order, items []models.OrderItem) error
}

// ConfirmationMailer sends the order-placed email. Nil mailer means email is
// not configured.
type ConfirmationMailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}

type CheckoutService struct {
	products    ProductFinder
	orders      OrderStore
	carts       *CartService
	mailer      ConfirmationMailer
	taxRate     decimal.Decimal
	shippingFee decimal.Decimal
}

func NewCheckoutService(products ProductFinder, orders OrderStore, carts *CartService,
	mailer ConfirmationMailer, taxRate, shippingFee decimal.Decimal) *CheckoutService {
	return &CheckoutService{
		products:    products,
		orders:      orders,
		carts:       carts,
		mailer:      mailer,
		taxRate:     taxRate,
		shippingFee: shippingFee,
	}
}

// Quote computes totals for the given cart against live prices and stock.
// The cart is passed in explicitly; the calculator holds no session state.
func (s *CheckoutService) Quote(ctx context.Context, cart models.Cart) (*Quote, error) {
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	ids := make([]int, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Included: []QuoteLine{},
		Excluded: []ExcludedLine{},
		Subtotal: decimal.Zero,
	}

	for id, entry := range cart {
		product, ok := products[id]
		if !ok || !product.IsActive {
			quote.Excluded = append(quote.Excluded, ExcludedLine{
				ProductID: id,
				Requested: entry.Quantity,
				Reason:    ExcludeReasonUnavailable,
			})
			continue
		}

		if product.StockQuantity < entry.Quantity {
			quote.Excluded = append(quote.Excluded, ExcludedLine{
				ProductID:   id,
				ProductName: product.Name,
				Requested:   entry.Quantity,
				Available:   product.StockQuantity,
				Reason:      ExcludeReasonInsufficientStock,
			})
			continue
		}

		unitPrice := product.EffectivePrice()
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		quote.Included = append(quote.Included, QuoteLine{
			Product:   product,
			Quantity:  entry.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
		quote.Subtotal = quote.Subtotal.Add(subtotal)
	}

	quote.Tax = quote.Subtotal.Mul(s.taxRate)
	quote.Shipping = s.shippingFee
	quote.Total = quote.Subtotal.Add(quote.Tax).Add(quote.Shipping)
	return quote, nil
}

// PlaceOrder turns the session cart into a persisted order. Placement is all
// or nothing: entries failing the stock check fail the whole call with
// ErrStockChanged instead of being silently dropped, and the materializer
// runs inside a single transaction with conditional decrements. The cart is
// cleared only after a successful commit.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, user *models.User,
	req models.CheckoutRequest) (*models.Order, error) {

	cart, err := s.carts.Contents(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quote, err := s.Quote(ctx, cart)
	if err != nil {
		return nil, err
	}

	if len(quote.Excluded) > 0 {
		return nil, &ErrStockChanged{Excluded: quote.Excluded}
	}
	if len(quote.Included) == 0 {
		return nil, ErrCartEmpty
	}

	billing := req.BillingAddress
	if billing == "" {
		billing = req.ShippingAddress
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	order := &models.Order{
		OrderNumber:     newOrderNumber(),
		UserID:          user.ID,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Notes:           notes,
	}

	items := make([]models.OrderItem, 0, len(quote.Included))
	for _, line := range quote.Included {
		items = append(items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Subtotal,
		})
	}

	if err := s.orders.Place(ctx, order, items); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("Warning: failed to clear cart for session %s: %v", sessionID, err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
			log.Printf("Warning: failed to send order confirmation for %s: %v", order.OrderNumber, err)
		}
	}

	return order, nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
