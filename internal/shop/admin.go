package shop

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"goyal-store/internal/catalog"
)

// ErrInvalidProduct wraps every product validation failure
var ErrInvalidProduct = errors.New("invalid product")

// ErrUnknownAction is returned by BulkStock for actions it does not know
var ErrUnknownAction = errors.New("unknown stock action")

func validateProduct(p catalog.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	case !p.Style.Valid():
		return fmt.Errorf("%w: unknown style %q", ErrInvalidProduct, p.Style)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

// AddProduct appends a new product with no reviews to the catalog
func (s *Store) AddProduct(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error) {
	p := catalog.Product{
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		Style:            in.Style,
		Price:            in.Price,
		Stock:            in.Stock,
		Image:            in.Image,
		AdditionalImages: slices.Clone(in.AdditionalImages),
		Description:      in.Description,
		Featured:         in.Featured,
		Reviews:          []catalog.Review{},
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.newID()
	s.products = append(s.products, p)

	s.observer.Mutation("add_product")
	s.save(ctx, KeyProducts)
	out := p.Clone()
	return &out, nil
}

// UpdateProduct applies a partial update. A nil product with a nil error
// means id was not found.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := catalog.Find(s.products, id)
	if i < 0 {
		return nil, nil
	}
	updated := s.products[i].Clone()
	patch.Apply(&updated)
	if err := validateProduct(updated); err != nil {
		return nil, err
	}
	s.products[i] = updated

	s.observer.Mutation("update_product")
	s.save(ctx, KeyProducts)
	out := updated.Clone()
	return &out, nil
}

// DeleteProduct removes a product from the catalog and from the wishlist and
// recently viewed lists. Cart lines and orders keep their snapshots.
func (s *Store) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := catalog.Find(s.products, id)
	if i < 0 {
		return false
	}
	s.products = slices.Delete(s.products, i, i+1)

	s.observer.Mutation("delete_product")
	s.save(ctx, KeyProducts)
	if j := slices.Index(s.wishlist, id); j >= 0 {
		s.wishlist = slices.Delete(s.wishlist, j, j+1)
		s.save(ctx, KeyWishlist)
	}
	if j := slices.Index(s.recent, id); j >= 0 {
		s.recent = slices.Delete(s.recent, j, j+1)
		s.save(ctx, KeyRecent)
	}
	return true
}

// AdjustStock shifts a product's stock by delta, floored at zero
func (s *Store) AdjustStock(ctx context.Context, id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := catalog.Find(s.products, id)
	if i < 0 {
		return false
	}
	s.products[i].Stock = max(0, addCap(s.products[i].Stock, delta))

	s.observer.Mutation("adjust_stock")
	s.save(ctx, KeyProducts)
	return true
}

// BulkStock applies action to every listed product and returns how many matched
func (s *Store) BulkStock(ctx context.Context, ids []string, action StockAction) (int, error) {
	if _, ok := action.apply(0); !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.products {
		if slices.Contains(ids, s.products[i].ID) {
			s.products[i].Stock, _ = action.apply(s.products[i].Stock)
			n++
		}
	}
	if n > 0 {
		s.observer.Mutation("bulk_stock")
		s.save(ctx, KeyProducts)
	}
	return n, nil
}
