package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	price := decimal.RequireFromString("10.00")
	lower := decimal.RequireFromString("8.00")
	higher := decimal.RequireFromString("12.00")

	t.Run("no sale price", func(t *testing.T) {
		p := Product{Price: price}
		assert.True(t, p.EffectivePrice().Equal(price))
		assert.False(t, p.OnSale())
	})

	t.Run("sale price lower than price", func(t *testing.T) {
		p := Product{Price: price, SalePrice: &lower}
		assert.True(t, p.EffectivePrice().Equal(lower))
		assert.True(t, p.OnSale())
	})

	t.Run("sale price above price is ignored", func(t *testing.T) {
		p := Product{Price: price, SalePrice: &higher}
		assert.True(t, p.EffectivePrice().Equal(price))
		assert.False(t, p.OnSale())
	})

	t.Run("sale price equal to price is ignored", func(t *testing.T) {
		p := Product{Price: price, SalePrice: &price}
		assert.True(t, p.EffectivePrice().Equal(price))
		assert.False(t, p.OnSale())
	})
}
