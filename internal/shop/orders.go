package shop

import (
	"context"

	"goyal-store/internal/catalog"
)

// Checkout turns the cart into a Pending order. Stock of each purchased product
// is reduced by the quantity bought, floored at zero, so an order is accepted
// even when it asks for more than the recorded stock. The new order goes to the
// front of the list and the cart is emptied. An empty cart produces no order.
func (s *Store) Checkout(ctx context.Context) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return Order{}, false
	}

	items := cloneCart(s.cart)
	total := 0
	bought := make(map[string]int, len(items))
	for _, it := range items {
		total = addCap(total, it.LineTotal())
		bought[it.ID] += it.Quantity
	}

	for i := range s.products {
		if qty, ok := bought[s.products[i].ID]; ok {
			s.products[i].Stock = max(0, s.products[i].Stock-qty)
		}
	}

	order := Order{
		ID:           "ORD-" + s.newID(),
		CustomerName: GuestCustomer,
		Items:        items,
		Total:        total,
		Date:         s.now(),
		Status:       StatusPending,
	}
	s.orders = append([]Order{order}, s.orders...)
	s.cart = []CartItem{}

	s.observer.Mutation("checkout")
	s.save(ctx, KeyProducts)
	s.save(ctx, KeyOrders)
	s.save(ctx, KeyCart)
	return order.clone(), true
}

// UpdateOrder overwrites an order's status. Any transition between known
// statuses is allowed, backwards included, matching the admin console.
func (s *Store) UpdateOrder(ctx context.Context, id string, status OrderStatus) bool {
	if !status.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.observer.Mutation("update_order")
			s.save(ctx, KeyOrders)
			return true
		}
	}
	return false
}

// Dashboard computes the admin headline numbers
func (s *Store) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := Dashboard{
		LowStockCount: len(catalog.LowStock(s.products, catalog.LowStockThreshold)),
		OrderCount:    len(s.orders),
		ProductCount:  len(s.products),
	}
	for _, o := range s.orders {
		d.Revenue = addCap(d.Revenue, o.Total)
	}
	return d
}
