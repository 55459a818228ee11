package compare

import (
	"testing"

	"techfix/cartstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(id uint, name, price string, attrs map[string]string) cartstore.ProductSnapshot {
	return cartstore.ProductSnapshot{
		ProductID:  id,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Attributes: attrs,
	}
}

func TestBuildTable_Empty(t *testing.T) {
	table := BuildTable(nil)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestBuildTable_PinsPriceRowsFirst(t *testing.T) {
	a := snap(1, "SSD A", "100", map[string]string{"capacity": "1TB"})
	a.SalePrice = decimal.RequireFromString("89.99")
	b := snap(2, "SSD B", "120", map[string]string{"capacity": "2TB", "interface": "NVMe"})

	table := BuildTable([]cartstore.ProductSnapshot{a, b})

	require.Len(t, table.Columns, 2)
	require.True(t, len(table.Rows) >= 2)
	assert.Equal(t, "price", table.Rows[0].Key)
	assert.Equal(t, "sale_price", table.Rows[1].Key)
	assert.Equal(t, []string{"100", "120"}, table.Rows[0].Values)
	assert.Equal(t, []string{"89.99", "—"}, table.Rows[1].Values)
}

func TestBuildTable_UnionOfAttributeKeys(t *testing.T) {
	a := snap(1, "A", "10", map[string]string{"weight": "1kg", "color": "black"})
	b := snap(2, "B", "20", map[string]string{"weight": "2kg", "warranty": "2y"})

	table := BuildTable([]cartstore.ProductSnapshot{a, b})

	var keys []string
	for _, row := range table.Rows[2:] {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{"color", "warranty", "weight"}, keys, "union, sorted")

	byKey := make(map[string][]string)
	for _, row := range table.Rows {
		byKey[row.Key] = row.Values
	}
	assert.Equal(t, []string{"black", "—"}, byKey["color"])
	assert.Equal(t, []string{"—", "2y"}, byKey["warranty"])
	assert.Equal(t, []string{"1kg", "2kg"}, byKey["weight"])
}

func TestBuildTable_ExcludesInternalKeys(t *testing.T) {
	a := snap(1, "A", "10", map[string]string{
		"id":          "1",
		"image":       "a.png",
		"created_at":  "2024-01-01",
		"updated_at":  "2024-01-02",
		"reviews":     "[]",
		"description": "long text",
		"version":     "3",
		"cpu":         "i7",
	})

	table := BuildTable([]cartstore.ProductSnapshot{a})

	for _, row := range table.Rows {
		assert.NotContains(t, []string{"id", "image", "created_at", "updated_at", "reviews", "description", "version"}, row.Key)
	}
	require.Len(t, table.Rows, 3) // price, sale_price, cpu
	assert.Equal(t, "cpu", table.Rows[2].Key)
}

func TestBuildTable_DuplicateProductCollapses(t *testing.T) {
	first := snap(5, "Monitor", "300", map[string]string{"size": "27\""})
	stale := snap(5, "Monitor", "250", map[string]string{"size": "24\""})

	table := BuildTable([]cartstore.ProductSnapshot{first, stale})

	require.Len(t, table.Columns, 1)
	assert.Equal(t, []string{"300"}, table.Rows[0].Values, "first snapshot wins")
}
