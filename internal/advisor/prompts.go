package advisor

import (
	"fmt"
	"strings"

	"goyal-store/internal/catalog"
)

func recommendationPrompt(storeName, userPrompt string, products []catalog.Product) string {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "ID: %s | %s (%s, %s)\n", p.ID, p.Name, p.Category, p.Style)
	}
	return fmt.Sprintf(`You are a fashion expert at %q.
User wants advice: %q
Available Catalog:
%s
Provide your recommendation in a valid JSON format with:
1. "advice": A friendly 2-3 sentence explanation.
2. "recommendedIds": An array of product IDs from the catalog that best match.

Only return the JSON.`, storeName, userPrompt, b.String())
}

func descriptionPrompt(storeName, name string, category catalog.Category, style catalog.Style) string {
	return fmt.Sprintf(`Write a compelling 2-sentence marketing description for a new item at %s:
Product: %s
Category: %s
Style: %s
Focus on quality, elegance, and the blend of modern/traditional values.`, storeName, name, category, style)
}
