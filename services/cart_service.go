package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"shophub/models"
)

// ProductFinder resolves cart entries against live products. Implemented by
// repositories.ProductRepository.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []int) (map[int]models.Product, error)
}

type CartService struct {
	store    CartStore
	products ProductFinder
}

func NewCartService(store CartStore, products ProductFinder) *CartService {
	return &CartService{store: store, products: products}
}

// Add creates an entry or accumulates quantity onto an existing one. The
// quantity is not capped against stock here; availability is checked at
// checkout time.
func (s *CartService) Add(ctx context.Context, sessionID string, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if entry, ok := cart[productID]; ok {
		entry.Quantity += quantity
		cart[productID] = entry
	} else {
		cart[productID] = models.CartEntry{Quantity: quantity, AddedAt: time.Now()}
	}

	return s.store.Save(ctx, sessionID, cart)
}

// Update sets the quantity verbatim. Zero or negative removes the entry.
func (s *CartService) Update(ctx context.Context, sessionID string, productID, quantity int) error {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		delete(cart, productID)
	} else if entry, ok := cart[productID]; ok {
		entry.Quantity = quantity
		cart[productID] = entry
	} else {
		cart[productID] = models.CartEntry{Quantity: quantity, AddedAt: time.Now()}
	}

	return s.store.Save(ctx, sessionID, cart)
}

// Remove deletes the entry if present. Removing an absent product is not an
// error.
func (s *CartService) Remove(ctx context.Context, sessionID string, productID int) error {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	delete(cart, productID)
	return s.store.Save(ctx, sessionID, cart)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func (s *CartService) Contents(ctx context.Context, sessionID string) (models.Cart, error) {
	return s.store.Get(ctx, sessionID)
}

// View resolves every entry against the live catalog. Entries whose product
// vanished or went inactive are silently dropped, never an error.
func (s *CartService) View(ctx context.Context, sessionID string) (*models.CartView, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{Items: []models.CartLine{}, Total: decimal.Zero}
	for id, entry := range cart {
		product, ok := products[id]
		if !ok || !product.IsActive {
			continue
		}

		subtotal := product.EffectivePrice().Mul(decimal.NewFromInt(int64(entry.Quantity)))
		view.Items = append(view.Items, models.CartLine{
			Product:  product,
			Quantity: entry.Quantity,
			AddedAt:  entry.AddedAt,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}
