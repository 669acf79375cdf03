// Package dashboard turns a product list into the figures shown on the
// dashboard page: metric totals, the top-quantity ranking and per-category
// sums. Everything here is pure and recomputed on every render.
package dashboard

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// TopN is the length of the quantity ranking.
const TopN = 10

type CategoryTotal struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type Summary struct {
	Empty          bool             `json:"empty"`
	ProductCount   int              `json:"product_count"`
	TotalQuantity  int              `json:"total_quantity"`
	TotalValue     decimal.Decimal  `json:"total_value"`
	CategoryCount  int              `json:"category_count"`
	TopProducts    []models.Product `json:"top_products"`
	CategoryTotals []CategoryTotal  `json:"category_totals"`
}

// Summarize computes the dashboard view model. Money is summed as exact
// decimals so the total carries no intermediate float rounding.
func Summarize(products []models.Product) Summary {
	s := Summary{
		Empty:          len(products) == 0,
		ProductCount:   len(products),
		TotalValue:     decimal.Zero,
		TopProducts:    []models.Product{},
		CategoryTotals: []CategoryTotal{},
	}
	if s.Empty {
		return s
	}

	byCategory := make(map[string]int)
	for _, p := range products {
		s.TotalQuantity += p.Quantity
		s.TotalValue = s.TotalValue.Add(lineValue(p))
		byCategory[p.Category] += p.Quantity
	}
	s.CategoryCount = len(byCategory)

	for category, qty := range byCategory {
		s.CategoryTotals = append(s.CategoryTotals, CategoryTotal{Category: category, Quantity: qty})
	}
	slices.SortFunc(s.CategoryTotals, func(a, b CategoryTotal) int {
		return cmp.Compare(a.Category, b.Category)
	})

	s.TopProducts = TopByQuantity(products, TopN)
	return s
}

// TopByQuantity sorts ascending by quantity, keeping store order among ties,
// and returns the last n entries: the n largest, smallest first.
func TopByQuantity(products []models.Product, n int) []models.Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b models.Product) int {
		return cmp.Compare(a.Quantity, b.Quantity)
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func lineValue(p models.Product) decimal.Decimal {
	return decimal.NewFromFloat(p.UnitPrice).Mul(decimal.NewFromInt(int64(p.Quantity)))
}
