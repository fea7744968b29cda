package catalog

// Category is the audience a garment is cut for
type Category string

const (
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

// Style is the design line of a garment
type Style string

const (
	StyleModern      Style = "Modern"
	StyleTraditional Style = "Traditional"
)

// Valid reports whether s is one of the known styles
func (s Style) Valid() bool {
	return s == StyleModern || s == StyleTraditional
}

// Review is a customer review attached to a product
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

// Product represents a product in the catalog
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Style            Style    `json:"style"`
	Price            int      `json:"price"`
	Stock            int      `json:"stock"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages,omitempty"`
	Description      string   `json:"description"`
	Featured         bool     `json:"featured,omitempty"`
	Reviews          []Review `json:"reviews"`
	AverageRating    float64  `json:"averageRating"`
}

// Clone returns a deep copy of p so callers can hold it without sharing slices
func (p Product) Clone() Product {
	c := p
	if p.AdditionalImages != nil {
		c.AdditionalImages = append([]string(nil), p.AdditionalImages...)
	}
	c.Reviews = append([]Review{}, p.Reviews...)
	return c
}

// CloneAll deep-copies a product slice
func CloneAll(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// ProductInput represents the payload for creating a product
type ProductInput struct {
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Style            Style    `json:"style"`
	Price            int      `json:"price"`
	Stock            int      `json:"stock"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages,omitempty"`
	Description      string   `json:"description"`
	Featured         bool     `json:"featured,omitempty"`
}

// ProductPatch represents the payload for updating a product
type ProductPatch struct {
	Name             *string   `json:"name,omitempty"`
	Category         *Category `json:"category,omitempty"`
	Style            *Style    `json:"style,omitempty"`
	Price            *int      `json:"price,omitempty"`
	Stock            *int      `json:"stock,omitempty"`
	Image            *string   `json:"image,omitempty"`
	AdditionalImages *[]string `json:"additionalImages,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Featured         *bool     `json:"featured,omitempty"`
}

// Apply copies every set field of patch onto p. Reviews and rating are never touched.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Style != nil {
		p.Style = *patch.Style
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = max(0, *patch.Stock)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.AdditionalImages != nil {
		p.AdditionalImages = append([]string(nil), (*patch.AdditionalImages)...)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}
