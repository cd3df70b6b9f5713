package catalog

import "context"

// Static serves a fixed product list.
type Static struct {
	products []Product
}

// NewStatic returns a Static over products, or over the built-in list when
// products is empty.
func NewStatic(products []Product) *Static {
	if len(products) == 0 {
		products = builtin
	}
	return &Static{products: normalize(products)}
}

// Products returns a copy of the list.
func (s *Static) Products(context.Context) ([]Product, error) {
	dup := make([]Product, len(s.products))
	copy(dup, s.products)
	return dup, nil
}

var builtin = []Product{
	{ID: 101, Name: "Sourdough Loaf", Price: 549, Category: "bakery"},
	{ID: 102, Name: "Butter Croissant", Price: 325, Category: "bakery"},
	{ID: 103, Name: "Rye Crackers", Price: 399, Category: "bakery"},
	{ID: 201, Name: "Whole Milk 1L", Price: 229, Category: "dairy-eggs"},
	{ID: 202, Name: "Free Range Eggs (12)", Price: 489, Category: "dairy-eggs"},
	{ID: 203, Name: "Aged Cheddar", Price: 699, Category: "dairy-eggs"},
	{ID: 204, Name: "Greek Yogurt", Price: 379, Category: "dairy-eggs"},
	{ID: 301, Name: "Honeycrisp Apples", Price: 449, Category: "produce"},
	{ID: 302, Name: "Bananas", Price: 159, Category: "produce"},
	{ID: 303, Name: "Baby Spinach", Price: 299, Category: "produce"},
	{ID: 304, Name: "Avocados (4)", Price: 549, Category: "produce"},
	{ID: 401, Name: "Cold Brew Coffee", Price: 1199, Category: "pantry"},
	{ID: 402, Name: "Rolled Oats", Price: 429, Category: "pantry"},
	{ID: 403, Name: "Extra Virgin Olive Oil", Price: 1349, Category: "pantry"},
	{ID: 404, Name: "Dark Chocolate 70%", Price: 349, Category: "pantry"},
}
