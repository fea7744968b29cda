package shop

import (
	"context"
	"strings"

	"goyal-store/internal/catalog"
)

const reviewDateLayout = "2006-01-02"

// AddReview appends a review to a product and refreshes its average rating.
// Ratings are clamped to 1..5. Unknown products are ignored.
func (s *Store) AddReview(ctx context.Context, productID string, in ReviewInput) (catalog.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := catalog.Find(s.products, productID)
	if i < 0 {
		return catalog.Review{}, false
	}

	r := catalog.Review{
		ID:       "rev-" + s.newID(),
		UserName: strings.TrimSpace(in.UserName),
		Rating:   catalog.ClampRating(in.Rating),
		Comment:  strings.TrimSpace(in.Comment),
		Date:     s.now().Format(reviewDateLayout),
	}
	p := &s.products[i]
	p.Reviews = append(p.Reviews, r)
	p.AverageRating = catalog.AverageRating(p.Reviews)

	s.observer.Mutation("add_review")
	s.save(ctx, KeyProducts)
	return r, true
}

// DeleteReview removes a review and refreshes the product's average rating
func (s *Store) DeleteReview(ctx context.Context, productID, reviewID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := catalog.Find(s.products, productID)
	if i < 0 {
		return false
	}
	p := &s.products[i]
	for j, r := range p.Reviews {
		if r.ID != reviewID {
			continue
		}
		p.Reviews = append(p.Reviews[:j:j], p.Reviews[j+1:]...)
		p.AverageRating = catalog.AverageRating(p.Reviews)

		s.observer.Mutation("delete_review")
		s.save(ctx, KeyProducts)
		return true
	}
	return false
}

// AllReviews lists every review in catalog order for moderation
func (s *Store) AllReviews() []ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []ReviewEntry{}
	for _, p := range s.products {
		for _, r := range p.Reviews {
			out = append(out, ReviewEntry{ProductID: p.ID, ProductName: p.Name, Review: r})
		}
	}
	return out
}
