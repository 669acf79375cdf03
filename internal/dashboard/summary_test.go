package dashboard

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.Empty)
	assert.Equal(t, 0, s.TotalQuantity)
	assert.True(t, s.TotalValue.IsZero())
	assert.Equal(t, 0, s.CategoryCount)
	assert.Empty(t, s.TopProducts)
	assert.Empty(t, s.CategoryTotals)
}

func TestSummarize_Totals(t *testing.T) {
	products := []models.Product{
		{Name: "Laptop", Category: "Electronics", Quantity: 3, UnitPrice: 3500.10},
		{Name: "Chair", Category: "Furniture", Quantity: 10, UnitPrice: 0.1},
		{Name: "Phone", Category: "Electronics", Quantity: 7, UnitPrice: 0.2},
	}

	s := Summarize(products)

	assert.False(t, s.Empty)
	assert.Equal(t, 3, s.ProductCount)
	assert.Equal(t, 20, s.TotalQuantity)
	// 10500.30 + 1.00 + 1.40, exact in decimal arithmetic
	assert.True(t, decimal.RequireFromString("10502.70").Equal(s.TotalValue), "got %s", s.TotalValue)
	assert.Equal(t, 2, s.CategoryCount)
}

func TestSummarize_CategoryCount(t *testing.T) {
	s := Summarize([]models.Product{
		{Name: "a", Category: "A"},
		{Name: "b", Category: "A"},
		{Name: "c", Category: "B"},
	})
	assert.Equal(t, 2, s.CategoryCount)
}

func TestSummarize_CategoryTotals(t *testing.T) {
	s := Summarize([]models.Product{
		{Name: "x", Category: "A", Quantity: 3},
		{Name: "y", Category: "B", Quantity: 5},
		{Name: "z", Category: "A", Quantity: 2},
	})

	assert.Equal(t, []CategoryTotal{
		{Category: "A", Quantity: 5},
		{Category: "B", Quantity: 5},
	}, s.CategoryTotals)
}

func TestTopByQuantity_LastTenAscending(t *testing.T) {
	var products []models.Product
	// store order deliberately not sorted
	for _, q := range []int{8, 1, 15, 3, 12, 5, 9, 14, 2, 11, 7, 13, 4, 10, 6} {
		products = append(products, models.Product{Name: fmt.Sprintf("p%d", q), Quantity: q})
	}

	top := Summarize(products).TopProducts

	require.Len(t, top, 10)
	for i, p := range top {
		assert.Equal(t, i+6, p.Quantity)
	}
}

func TestTopByQuantity_StableTies(t *testing.T) {
	products := []models.Product{
		{Name: "first", Quantity: 5},
		{Name: "low", Quantity: 1},
		{Name: "second", Quantity: 5},
		{Name: "third", Quantity: 5},
	}

	top := TopByQuantity(products, 3)

	require.Len(t, top, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{top[0].Name, top[1].Name, top[2].Name})
}

func TestTopByQuantity_FewerThanN(t *testing.T) {
	products := []models.Product{{Name: "b", Quantity: 2}, {Name: "a", Quantity: 1}}

	top := TopByQuantity(products, TopN)

	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Name)
	assert.Equal(t, "b", products[0].Name, "input must not be reordered")
}
