package shop

import (
	"math"
	"time"

	"goyal-store/internal/catalog"
)

// GuestCustomer is recorded on every order since the shop has no accounts
const GuestCustomer = "Exclusive Guest"

const (
	// FreeShippingThreshold is the subtotal above which shipping is free
	FreeShippingThreshold = 2000
	// ShippingFee is charged on non-empty carts at or below the threshold
	ShippingFee = 99
	// RecentLimit caps the recently viewed list
	RecentLimit = 6
	// MaxLineQuantity caps the quantity of a single cart line
	MaxLineQuantity = 999
)

// addCap and mulCap saturate at math.MaxInt instead of wrapping. Stored
// products are not revalidated on load, so totals must not trust them.
func addCap(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulCap(a, b int) int {
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// OrderStatus tracks fulfilment. Transitions are not enforced; see UpdateOrder.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// CartItem is a product snapshot taken when it was added, plus a quantity.
// Price and name do not follow later catalog edits.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity for the snapshot
func (c CartItem) LineTotal() int {
	return mulCap(c.Price, c.Quantity)
}

func (c CartItem) clone() CartItem {
	return CartItem{Product: c.Product.Clone(), Quantity: c.Quantity}
}

func cloneCart(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

// Order is a frozen copy of the cart at checkout
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Items        []CartItem  `json:"items"`
	Total        int         `json:"total"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `json:"status"`
}

func (o Order) clone() Order {
	c := o
	c.Items = cloneCart(o.Items)
	return c
}

// ReviewInput is the caller-supplied part of a review
type ReviewInput struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// ReviewEntry is a review together with the product it belongs to
type ReviewEntry struct {
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Review      catalog.Review `json:"review"`
}

// CartSummary is the checkout panel totals
type CartSummary struct {
	Count    int `json:"count"`
	Subtotal int `json:"subtotal"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
}

// Dashboard aggregates the admin console headline numbers
type Dashboard struct {
	Revenue       int `json:"revenue"`
	LowStockCount int `json:"lowStockCount"`
	OrderCount    int `json:"orderCount"`
	ProductCount  int `json:"productCount"`
}

// StockAction is a bulk inventory operation
type StockAction string

const (
	StockIncrease StockAction = "increase"
	StockDecrease StockAction = "decrease"
	StockRestock  StockAction = "restock"
)

const (
	bulkStep     = 10
	restockLevel = 50
)

// apply returns the new stock level for action
func (a StockAction) apply(stock int) (int, bool) {
	switch a {
	case StockIncrease:
		return addCap(stock, bulkStep), true
	case StockDecrease:
		return max(0, stock-bulkStep), true
	case StockRestock:
		return max(stock, restockLevel), true
	}
	return stock, false
}
