package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shophub/models"
)

func newCartFixture(products map[int]models.Product) *CartService {
	return NewCartService(NewMemoryCartStore(), stubFinder{products: products})
}

func TestAddAccumulatesQuantity(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 2))
	require.NoError(t, svc.Add(ctx, "s", 1, 3))

	cart, err := svc.Contents(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 5, cart[1].Quantity)
	assert.False(t, cart[1].AddedAt.IsZero())
}

func TestAddDefaultsToOne(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 0))

	cart, _ := svc.Contents(ctx, "s")
	assert.Equal(t, 1, cart[1].Quantity)
}

func TestUpdateSetsQuantityVerbatim(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 5))
	require.NoError(t, svc.Update(ctx, "s", 1, 2))

	cart, _ := svc.Contents(ctx, "s")
	assert.Equal(t, 2, cart[1].Quantity, "update replaces, never accumulates")
}

func TestUpdateZeroOrNegativeRemoves(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 5))
	require.NoError(t, svc.Update(ctx, "s", 1, 0))

	cart, _ := svc.Contents(ctx, "s")
	assert.NotContains(t, cart, 1)

	require.NoError(t, svc.Add(ctx, "s", 2, 5))
	require.NoError(t, svc.Update(ctx, "s", 2, -3))

	cart, _ = svc.Contents(ctx, "s")
	assert.NotContains(t, cart, 2)
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	svc := newCartFixture(nil)

	assert.NoError(t, svc.Remove(context.Background(), "s", 42))
}

func TestClearEmptiesCart(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 1))
	require.NoError(t, svc.Add(ctx, "s", 2, 1))
	require.NoError(t, svc.Clear(ctx, "s"))

	cart, _ := svc.Contents(ctx, "s")
	assert.Empty(t, cart)
}

func TestViewComputesLineSubtotals(t *testing.T) {
	svc := newCartFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 5),
		2: activeProduct(2, "2.50", 5),
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 2))
	require.NoError(t, svc.Add(ctx, "s", 2, 4))

	view, err := svc.View(ctx, "s")
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.True(t, view.Total.Equal(dec("30.00")), "total = %s", view.Total)

	for _, line := range view.Items {
		expected := line.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity)))
		assert.True(t, line.Subtotal.Equal(expected))
	}
}

func TestViewDropsMissingProducts(t *testing.T) {
	svc := newCartFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 5),
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 1))
	require.NoError(t, svc.Add(ctx, "s", 99, 1)) // product gone from catalog

	view, err := svc.View(ctx, "s")
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Product.ID)
	assert.True(t, view.Total.Equal(dec("10.00")))
}

func TestViewDropsInactiveProducts(t *testing.T) {
	inactive := activeProduct(2, "5.00", 5)
	inactive.IsActive = false

	svc := newCartFixture(map[int]models.Product{
		1: activeProduct(1, "10.00", 5),
		2: inactive,
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s", 1, 1))
	require.NoError(t, svc.Add(ctx, "s", 2, 1))

	view, err := svc.View(ctx, "s")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Product.ID)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newCartFixture(nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "alpha", 1, 2))

	cart, err := svc.Contents(ctx, "beta")
	require.NoError(t, err)
	assert.Empty(t, cart)
}
