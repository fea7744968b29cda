package shop

import (
	"context"

	"goyal-store/internal/catalog"
)

// AddToCart puts qty of p in the cart, merging with an existing line for the
// same product. Out-of-stock products, non-positive quantities and adds that
// would push the line past MaxLineQuantity are ignored.
// Catalog stock is left alone until checkout.
func (s *Store) AddToCart(ctx context.Context, p catalog.Product, qty int) bool {
	if p.Stock <= 0 || qty < 1 || qty > MaxLineQuantity {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.cart {
		if s.cart[i].ID == p.ID {
			if s.cart[i].Quantity > MaxLineQuantity-qty {
				return false
			}
			s.cart[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, CartItem{Product: p.Clone(), Quantity: qty})
	}

	s.observer.Mutation("add_to_cart")
	s.save(ctx, KeyCart)
	return true
}

// UpdateCartQuantity shifts a line's quantity by delta, kept within
// [1, MaxLineQuantity]. Lines are only dropped by RemoveFromCart.
func (s *Store) UpdateCartQuantity(ctx context.Context, id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i].Quantity = shiftQuantity(s.cart[i].Quantity, delta)
			s.observer.Mutation("update_cart_quantity")
			s.save(ctx, KeyCart)
			return true
		}
	}
	return false
}

// shiftQuantity compares before adding so extreme deltas cannot wrap
func shiftQuantity(q, delta int) int {
	switch {
	case delta > MaxLineQuantity-q:
		return MaxLineQuantity
	case delta < 1-q:
		return 1
	}
	return q + delta
}

// RemoveFromCart drops the line for id if present
func (s *Store) RemoveFromCart(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.observer.Mutation("remove_from_cart")
			s.save(ctx, KeyCart)
			return true
		}
	}
	return false
}

// CartSummary totals the cart the way the checkout panel shows it
func (s *Store) CartSummary() CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum CartSummary
	for _, it := range s.cart {
		sum.Count = addCap(sum.Count, it.Quantity)
		sum.Subtotal = addCap(sum.Subtotal, it.LineTotal())
	}
	if len(s.cart) > 0 && sum.Subtotal <= FreeShippingThreshold {
		sum.Shipping = ShippingFee
	}
	sum.Total = addCap(sum.Subtotal, sum.Shipping)
	return sum
}
