// Package report derives read-only views over the catalog and sales ledger.
package report

import (
	"slices"

	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/domain/sales"
)

// DefaultTopN is the size of the most expensive products report.
const DefaultTopN = 3

// TopExpensive returns up to n products ordered by price descending. Ties keep
// catalog order. The input slice is not modified.
func TopExpensive(products []product.Product, n int) []product.Product {
	if n <= 0 {
		return []product.Product{}
	}
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b product.Product) int {
		return b.Price.Cmp(a.Price)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// MostSold returns ledger entries ordered by quantity descending. Ties keep
// ledger insertion order. An empty ledger yields an empty, non-nil slice.
func MostSold(entries []sales.Entry) []sales.Entry {
	sorted := slices.Clone(entries)
	if sorted == nil {
		sorted = []sales.Entry{}
	}
	slices.SortStableFunc(sorted, func(a, b sales.Entry) int {
		return b.Quantity.Cmp(a.Quantity)
	})
	return sorted
}
