package cartstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id uint, name, price string) ProductSnapshot {
	return ProductSnapshot{
		ProductID: id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
	}
}

func TestMemoryStore_CartRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	items, err := s.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items, "missing cart reads as empty")

	want := []CartItem{
		{ProductSnapshot: snapshot(1, "SSD", "100"), Quantity: 2},
		{ProductSnapshot: snapshot(2, "RAM", "50"), Quantity: 1},
	}
	require.NoError(t, s.SetCart(ctx, "c1", want))

	items, err = s.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	// Other clients are isolated.
	other, err := s.GetCart(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, s.ClearCart(ctx, "c1"))
	items, err = s.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStore_CompareDedupsByProductID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := snapshot(7, "GPU", "400")
	require.NoError(t, s.AddCompare(ctx, "c1", first))

	// Second add of the same product, even with different snapshot data,
	// must not produce a second row.
	stale := snapshot(7, "GPU", "350")
	require.NoError(t, s.AddCompare(ctx, "c1", stale))

	snapshots, err := s.GetCompare(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.True(t, snapshots[0].Price.Equal(decimal.RequireFromString("400")), "first snapshot wins")
}

func TestMemoryStore_CompareRemovePreservesOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []uint{1, 2, 3} {
		require.NoError(t, s.AddCompare(ctx, "c1", snapshot(id, "p", "1")))
	}
	require.NoError(t, s.RemoveCompare(ctx, "c1", 2))

	snapshots, err := s.GetCompare(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, uint(1), snapshots[0].ProductID)
	assert.Equal(t, uint(3), snapshots[1].ProductID)

	require.NoError(t, s.ClearCompare(ctx, "c1"))
	snapshots, err = s.GetCompare(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestWithNotify_FiresOnMutations(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type event struct{ clientID, collection string }
	var events []event
	wrapped := WithNotify(s, func(clientID, collection string) {
		events = append(events, event{clientID, collection})
	})

	require.NoError(t, wrapped.SetCart(ctx, "c1", []CartItem{{ProductSnapshot: snapshot(1, "p", "1"), Quantity: 1}}))
	require.NoError(t, wrapped.AddCompare(ctx, "c1", snapshot(1, "p", "1")))
	require.NoError(t, wrapped.RemoveCompare(ctx, "c1", 1))
	require.NoError(t, wrapped.ClearCart(ctx, "c1"))
	require.NoError(t, wrapped.ClearCompare(ctx, "c1"))

	require.Len(t, events, 5)
	assert.Equal(t, "cart", events[0].collection)
	assert.Equal(t, "compare", events[1].collection)
	assert.Equal(t, "c1", events[0].clientID)

	// Reads do not notify.
	_, err := wrapped.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, events, 5)
}
