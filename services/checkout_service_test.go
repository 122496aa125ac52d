package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shophub/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type stubFinder struct {
	products map[int]models.Product
}

func (f stubFinder) FindByIDs(ctx context.Context, ids []int) (map[int]models.Product, error) {
	out := map[int]models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// fakeOrderStore mimics the repository's conditional decrement: an order only
// commits if every line can decrement stock without going negative.
type fakeOrderStore struct {
	mu     sync.Mutex
	stock  map[int]int
	placed []*models.Order
	nextID int
}

func newFakeOrderStore(stock map[int]int) *fakeOrderStore {
	return &fakeOrderStore{stock: stock}
}

func (s *fakeOrderStore) Place(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if s.stock[item.ProductID] < item.Quantity {
			return &stubInsufficientStock{name: item.ProductName}
		}
	}
	for _, item := range items {
		s.stock[item.ProductID] -= item.Quantity
	}

	s.nextID++
	order.ID = s.nextID
	order.Items = items
	s.placed = append(s.placed, order)
	return nil
}

type stubInsufficientStock struct{ name string }

func (e *stubInsufficientStock) Error() string { return "insufficient stock for " + e.name }

func activeProduct(id int, price string, stock int) models.Product {
	return models.Product{
		ID:            id,
		Name:          "Product " + string(rune('A'+id-1)),
		Price:         dec(price),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func newCheckoutFixture(products map[int]models.Product, stock map[int]int) (*CheckoutService, *CartService, *fakeOrderStore) {
	finder := stubFinder{products: products}
	store := newFakeOrderStore(stock)
	carts := NewCartService(NewMemoryCartStore(), finder)
	svc := NewCheckoutService(finder, store, carts, nil, dec("0.10"), dec("50"))
	return svc, carts, store
}

func TestQuoteMath(t *testing.T) {
	svc, _, _ := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 10),
	}, nil)

	cart := models.Cart{1: {Quantity: 2, AddedAt: time.Now()}}
	quote, err := svc.Quote(context.Background(), cart)
	require.NoError(t, err)

	require.Len(t, quote.Included, 1)
	assert.Empty(t, quote.Excluded)
	assert.True(t, quote.Subtotal.Equal(dec("20.00")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Tax.Equal(dec("2.00")), "tax = %s", quote.Tax)
	assert.True(t, quote.Shipping.Equal(dec("50")), "shipping = %s", quote.Shipping)
	assert.True(t, quote.Total.Equal(dec("72.00")), "total = %s", quote.Total)
}

func TestQuoteTotalIdentity(t *testing.T) {
	svc, _, _ := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "19.99", 10),
		2: activeProduct(2, "3.45", 10),
	}, nil)

	cart := models.Cart{
		1: {Quantity: 3},
		2: {Quantity: 7},
	}
	quote, err := svc.Quote(context.Background(), cart)
	require.NoError(t, err)

	// total must always equal subtotal + subtotal*rate + shipping
	expected := quote.Subtotal.Add(quote.Subtotal.Mul(dec("0.10"))).Add(dec("50"))
	assert.True(t, quote.Total.Equal(expected), "total = %s, want %s", quote.Total, expected)

	lineSum := decimal.Zero
	for _, line := range quote.Included {
		assert.True(t, line.Subtotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))))
		lineSum = lineSum.Add(line.Subtotal)
	}
	assert.True(t, quote.Subtotal.Equal(lineSum))
}

func TestQuoteUsesSalePrice(t *testing.T) {
	onSale := activeProduct(1, "10.00", 5)
	sale := dec("8.00")
	onSale.SalePrice = &sale

	badSale := activeProduct(2, "10.00", 5)
	higher := dec("12.00")
	badSale.SalePrice = &higher

	svc, _, _ := newCheckoutFixture(map[int]models.Product{1: onSale, 2: badSale}, nil)

	quote, err := svc.Quote(context.Background(), models.Cart{
		1: {Quantity: 1},
		2: {Quantity: 1},
	})
	require.NoError(t, err)

	prices := map[int]decimal.Decimal{}
	for _, line := range quote.Included {
		prices[line.Product.ID] = line.UnitPrice
	}
	assert.True(t, prices[1].Equal(dec("8.00")), "sale price wins when lower")
	assert.True(t, prices[2].Equal(dec("10.00")), "higher sale price is ignored")
}

func TestQuoteExcludesUnfulfillableEntries(t *testing.T) {
	svc, _, _ := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 1),
	}, nil)

	quote, err := svc.Quote(context.Background(), models.Cart{
		1:  {Quantity: 5}, // more than stock
		99: {Quantity: 1}, // no such product
	})
	require.NoError(t, err)

	assert.Empty(t, quote.Included)
	require.Len(t, quote.Excluded, 2)

	reasons := map[int]string{}
	for _, line := range quote.Excluded {
		reasons[line.ProductID] = line.Reason
	}
	assert.Equal(t, ExcludeReasonInsufficientStock, reasons[1])
	assert.Equal(t, ExcludeReasonUnavailable, reasons[99])
}

func TestQuoteEmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture(nil, nil)

	_, err := svc.Quote(context.Background(), models.Cart{})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc, carts, store := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 5),
	}, map[int]int{1: 5})

	ctx := context.Background()
	const session = "sess-1"
	require.NoError(t, carts.Add(ctx, session, 1, 2))

	user := &models.User{ID: 7, Email: "buyer@example.com"}
	order, err := svc.PlaceOrder(ctx, session, user, models.CheckoutRequest{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "bkash",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, order.UserID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.PaymentBkash, order.PaymentMethod)
	assert.Equal(t, "12 Main St", order.ShippingAddress)
	assert.Equal(t, "12 Main St", order.BillingAddress, "billing defaults to shipping")
	assert.NotEmpty(t, order.OrderNumber)
	assert.True(t, order.Total.Equal(dec("72.00")))

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.Total.Equal(item.UnitPrice.Mul(decimal.NewFromInt(2))))

	assert.Equal(t, 3, store.stock[1], "stock decremented")

	cart, err := carts.Contents(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, cart, "cart cleared after checkout")
}

func TestPlaceOrderRejectsStockChanges(t *testing.T) {
	svc, carts, store := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 1),
	}, map[int]int{1: 1})

	ctx := context.Background()
	const session = "sess-2"
	require.NoError(t, carts.Add(ctx, session, 1, 3))

	_, err := svc.PlaceOrder(ctx, session, &models.User{ID: 1}, models.CheckoutRequest{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "cash",
	})

	var stockErr *ErrStockChanged
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Excluded, 1)
	assert.Equal(t, 1, stockErr.Excluded[0].ProductID)
	assert.Equal(t, 3, stockErr.Excluded[0].Requested)
	assert.Equal(t, 1, stockErr.Excluded[0].Available)

	assert.Empty(t, store.placed, "nothing persisted")

	cart, err := carts.Contents(ctx, session)
	require.NoError(t, err)
	assert.Len(t, cart, 1, "cart kept so the buyer can adjust it")
}

// Two checkouts race for the last unit: the conditional decrement inside the
// store must let at most one commit, and stock must never go negative.
func TestConcurrentCheckoutLastUnit(t *testing.T) {
	svc, carts, store := newCheckoutFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 1),
	}, map[int]int{1: 1})

	ctx := context.Background()
	sessions := []string{"racer-a", "racer-b"}
	for _, session := range sessions {
		require.NoError(t, carts.Add(ctx, session, 1, 1))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(sessions))
	for i, session := range sessions {
		wg.Add(1)
		go func(i int, session string) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(ctx, session, &models.User{ID: i + 1}, models.CheckoutRequest{
				ShippingAddress: "12 Main St",
				PaymentMethod:   "card",
			})
		}(i, session)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one checkout wins the last unit")
	assert.Equal(t, 0, store.stock[1])
	assert.GreaterOrEqual(t, store.stock[1], 0, "stock never negative")
}

func TestOrderNumberFormat(t *testing.T) {
	a := newOrderNumber()
	b := newOrderNumber()

	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, a)
	assert.NotEqual(t, a, b)
}
