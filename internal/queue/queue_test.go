package queue

import (
	"testing"

	"tablenest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id int64) model.Order {
	return model.Order{
		FoodOrderID: id,
		TableID:     3,
		Items:       []model.OrderItem{{Name: "Margherita", Quantity: 1}},
	}
}

func ids(q *Queue) []int64 {
	var out []int64
	for _, o := range q.Orders() {
		out = append(out, o.FoodOrderID)
	}
	return out
}

func TestMergeAppendsAtTailAndAdvancesWatermark(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(1), order(2), order(3)})
	require.Equal(t, int64(3), q.LastSeen())

	q.Merge([]model.Order{order(5), order(7), order(9)})

	assert.Equal(t, []int64{1, 2, 3, 5, 7, 9}, ids(q))
	assert.Equal(t, int64(9), q.LastSeen())
}

func TestMergeSkipsIdentifiersAtOrBelowWatermark(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(4), order(6)})

	// A stale or duplicate response changes nothing.
	q.Merge([]model.Order{order(2), order(4), order(6)})

	assert.Equal(t, []int64{4, 6}, ids(q))
	assert.Equal(t, int64(6), q.LastSeen())
	assert.Equal(t, 2, q.Len())
}

func TestMergeEmptyBatchIsNoOp(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(8)})

	q.Merge(nil)

	assert.Equal(t, int64(8), q.LastSeen())
	assert.Equal(t, 1, q.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(1), order(2), order(3)})

	q.Remove(2)
	q.Remove(2)
	q.Remove(99)

	assert.Equal(t, []int64{1, 3}, ids(q))
	// Watermark is untouched by removal.
	assert.Equal(t, int64(3), q.LastSeen())
}

func TestRemovedOrderIsNotReinsertedByLaterPoll(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(1), order(2)})

	q.Remove(1)
	// The backend re-sends order 1; its identifier is below the watermark.
	q.Merge([]model.Order{order(1)})

	assert.Equal(t, []int64{2}, ids(q))
	_, ok := q.Get(1)
	assert.False(t, ok)
}

func TestConfirmTransitionsInPlace(t *testing.T) {
	q := New()
	q.Merge([]model.Order{order(1), order(2)})

	q.Confirm(1)

	got, ok := q.Get(1)
	require.True(t, ok)
	require.NotNil(t, got.Confirmed)
	assert.True(t, *got.Confirmed)

	// Order 2 remains undecided, and order 1 is still in the queue.
	other, _ := q.Get(2)
	assert.Nil(t, other.Confirmed)
	assert.Equal(t, []int64{1, 2}, ids(q))

	// Confirming an unknown identifier is a no-op.
	q.Confirm(77)
	assert.Equal(t, 2, q.Len())
}

func TestPendingConfirmFulfilLifecycle(t *testing.T) {
	q := New()
	require.Equal(t, int64(0), q.LastSeen())

	q.Merge([]model.Order{order(1)})
	assert.Equal(t, []int64{1}, ids(q))
	assert.Equal(t, int64(1), q.LastSeen())

	q.Confirm(1)
	got, _ := q.Get(1)
	require.NotNil(t, got.Confirmed)
	assert.True(t, *got.Confirmed)

	q.Remove(1)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, int64(1), q.LastSeen())
}
