package catalog

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
)

// Product is one purchasable item. Price is in cents.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
}

// ProductListResponse mirrors /api/products.
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// Source lists the available products.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders cents as dollars, e.g. 1299 -> "$12.99".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return printer.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// CategoryTitle turns a category slug such as "dairy-eggs" into "Dairy Eggs".
func CategoryTitle(category string) string {
	words := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(category), "-", " "))
	if words == "" {
		return "Other"
	}
	return cases.Title(language.Und).String(words)
}

// Lookup indexes products by id.
func Lookup(products []Product) map[int64]Product {
	out := make(map[int64]Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}

// normalize cleans a product list received from outside: names are NFC
// normalised and trimmed, invalid entries dropped, duplicates keep the first
// occurrence, and the result is ordered by category then name.
func normalize(products []Product) []Product {
	seen := make(map[int64]bool, len(products))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		p.Name = strings.TrimSpace(norm.NFC.String(p.Name))
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		if p.ID <= 0 || p.Name == "" || p.Price < 0 || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b Product) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
