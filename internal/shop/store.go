// Package shop is the storefront state store: the catalog, cart, orders,
// wishlist and recently viewed list. It is the only place those collections
// change, and every change is written through to a persist.Backend.
package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"goyal-store/internal/catalog"
	"goyal-store/internal/logger"
	"goyal-store/internal/persist"
)

// Collection keys, before the namespace prefix is applied
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyOrders   = "orders"
	KeyWishlist = "wishlist"
	KeyRecent   = "recent"
)

var collectionKeys = []string{KeyProducts, KeyCart, KeyOrders, KeyWishlist, KeyRecent}

// Observer receives store activity, normally for metrics
type Observer interface {
	Mutation(op string)
	PersistFailure(collection string)
}

type nopObserver struct{}

func (nopObserver) Mutation(string)       {}
func (nopObserver) PersistFailure(string) {}

// Store owns all shop state. All methods are safe for concurrent use; mutations
// are serialized and persisted before they return.
type Store struct {
	mu sync.Mutex

	backend   persist.Backend
	namespace string
	now       func() time.Time
	newID     func() string
	observer  Observer
	seed      func() []catalog.Product

	products []catalog.Product
	cart     []CartItem
	orders   []Order
	wishlist []string
	recent   []string
}

// Option configures Open
type Option func(*Store)

// WithNamespace prefixes every storage key
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithClock overrides the time source for order and review dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source for new orders, reviews and products
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithObserver attaches an activity observer
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// WithSeed replaces the catalog used when no products are stored
func WithSeed(seed func() []catalog.Product) Option {
	return func(s *Store) { s.seed = seed }
}

// Open rehydrates a store from backend. Collections that are absent or cannot
// be decoded start from their defaults: the seed catalog for products, empty
// for everything else.
func Open(ctx context.Context, backend persist.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:  backend,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		observer: nopObserver{},
		seed:     catalog.Seed,
	}
	for _, opt := range opts {
		opt(s)
	}

	keys := make([]string, len(collectionKeys))
	for i, k := range collectionKeys {
		keys[i] = s.key(k)
	}
	blobs, err := persist.LoadAll(ctx, backend, keys)
	if err != nil {
		return nil, fmt.Errorf("shop.Open: %w", err)
	}

	if !decodeCollection(s, blobs, KeyProducts, &s.products) {
		s.products = s.seed()
	}
	if !decodeCollection(s, blobs, KeyCart, &s.cart) {
		s.cart = []CartItem{}
	}
	if !decodeCollection(s, blobs, KeyOrders, &s.orders) {
		s.orders = []Order{}
	}
	if !decodeCollection(s, blobs, KeyWishlist, &s.wishlist) {
		s.wishlist = []string{}
	}
	if !decodeCollection(s, blobs, KeyRecent, &s.recent) {
		s.recent = []string{}
	}

	logger.Infof("shop state loaded: %d products, %d cart lines, %d orders, %d wishlisted",
		len(s.products), len(s.cart), len(s.orders), len(s.wishlist))
	return s, nil
}

func (s *Store) key(collection string) string {
	return s.namespace + collection
}

// decodeCollection reports whether a usable value for collection was found.
// A stored JSON null counts as absent.
func decodeCollection[T any](s *Store, blobs map[string][]byte, collection string, dst *[]T) bool {
	raw, ok := blobs[s.key(collection)]
	if !ok {
		return false
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warnf("discarding unreadable %s state: %v", collection, err)
		return false
	}
	if v == nil {
		logger.Warnf("discarding null %s state", collection)
		return false
	}
	*dst = v
	return true
}

// save writes one collection. Failures are logged and never undo the mutation.
// Callers hold s.mu.
func (s *Store) save(ctx context.Context, collection string) {
	var v interface{}
	switch collection {
	case KeyProducts:
		v = s.products
	case KeyCart:
		v = s.cart
	case KeyOrders:
		v = s.orders
	case KeyWishlist:
		v = s.wishlist
	case KeyRecent:
		v = s.recent
	}

	data, err := json.Marshal(v)
	if err == nil {
		err = s.backend.Save(ctx, s.key(collection), data)
	}
	if err != nil {
		s.observer.PersistFailure(collection)
		logger.Warnf("persist %s: %v", collection, err)
	}
}

// Products returns a copy of the catalog in insertion order
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.CloneAll(s.products)
}

// Product returns a copy of one product
func (s *Store) Product(id string) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := catalog.Find(s.products, id)
	if i < 0 {
		return catalog.Product{}, false
	}
	return s.products[i].Clone(), true
}

// Cart returns a copy of the cart lines
func (s *Store) Cart() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart)
}

// Orders returns a copy of all orders, most recent first
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.clone()
	}
	return out
}

// Order returns a copy of one order
func (s *Store) Order(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return Order{}, false
}
