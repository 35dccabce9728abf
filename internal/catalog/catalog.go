package catalog

import "strings"

// CategoryAll is the sentinel category matching every product.
const CategoryAll = "all"

// Catalog is an immutable, ordered snapshot of the product feed.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

// New builds a catalog preserving the feed order of the given products.
// When the feed repeats an id, the first occurrence wins.
func New(products []Product) *Catalog {
	ordered := make([]Product, 0, len(products))
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		if _, exists := byID[p.ID]; exists {
			continue
		}
		byID[p.ID] = p
		ordered = append(ordered, p)
	}
	return &Catalog{products: ordered, byID: byID}
}

// Empty returns a catalog with no products, used when the initial fetch fails.
func Empty() *Catalog {
	return New(nil)
}

// Products returns the full catalog in feed order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products in the snapshot.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Filter applies the free-text query and category predicates, both combined
// with AND. The query matches case-insensitively against title or
// description; an empty query matches everything. The category must match
// exactly unless it is the "all" sentinel. Feed order is preserved.
func (c *Catalog) Filter(query, category string) []Product {
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))

	matched := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if normalizedQuery != "" &&
			!strings.Contains(strings.ToLower(p.Title), normalizedQuery) &&
			!strings.Contains(strings.ToLower(p.Description), normalizedQuery) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// FindByID returns the product with the given identifier.
func (c *Catalog) FindByID(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns the distinct product categories in feed order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.products))
	out := make([]string, 0, len(c.products))
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
