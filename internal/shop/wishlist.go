package shop

import (
	"context"
	"slices"

	"goyal-store/internal/catalog"
)

// ToggleWishlist adds id when absent and removes it when present.
// It reports whether id is wishlisted afterwards.
func (s *Store) ToggleWishlist(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := false
	if i := slices.Index(s.wishlist, id); i >= 0 {
		s.wishlist = slices.Delete(s.wishlist, i, i+1)
	} else {
		s.wishlist = append(s.wishlist, id)
		in = true
	}

	s.observer.Mutation("toggle_wishlist")
	s.save(ctx, KeyWishlist)
	return in
}

// Wishlist returns the wishlisted ids
func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wishlist)
}

// InWishlist reports membership of id
func (s *Store) InWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.wishlist, id)
}

// WishlistProducts resolves the wishlist against the live catalog, skipping
// ids that no longer exist
func (s *Store) WishlistProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.wishlist)
}

// MarkViewed moves id to the front of the recently viewed list
func (s *Store) MarkViewed(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if catalog.Find(s.products, id) < 0 {
		return false
	}
	recent := []string{id}
	for _, r := range s.recent {
		if r != id && len(recent) < RecentLimit {
			recent = append(recent, r)
		}
	}
	s.recent = recent

	s.observer.Mutation("mark_viewed")
	s.save(ctx, KeyRecent)
	return true
}

// RecentlyViewed returns the recently viewed products, most recent first
func (s *Store) RecentlyViewed() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.recent)
}

func (s *Store) resolve(ids []string) []catalog.Product {
	out := []catalog.Product{}
	for _, id := range ids {
		if i := catalog.Find(s.products, id); i >= 0 {
			out = append(out, s.products[i].Clone())
		}
	}
	return out
}
