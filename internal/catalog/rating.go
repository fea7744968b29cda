package catalog

// AverageRating is the arithmetic mean of the review ratings, or 0 for no reviews.
// It is the only place the derived Product.AverageRating value is computed.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// ClampRating forces a rating into the 1..5 star range
func ClampRating(rating int) int {
	return min(5, max(1, rating))
}
