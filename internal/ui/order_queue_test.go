package ui

import (
	"errors"
	"testing"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queuedOrder(id, tableID int64) model.Order {
	return model.Order{
		FoodOrderID: id,
		TableID:     tableID,
		Items:       []model.OrderItem{{Name: "Burger", Quantity: 1, Price: 9.50}},
	}
}

func newTestQueueScreen(gen int) *orderQueueScreen {
	client := api.NewClient("http://127.0.0.1:0")
	creds := model.Credentials{UserID: 7, AuthToken: "tok"}
	return newOrderQueueScreen(client, creds, gen)
}

func TestQueuePollMergesOrders(t *testing.T) {
	s := newTestQueueScreen(1)
	s.inFlight = true

	cmd := s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(1, 3), queuedOrder(2, 5)}})
	assert.Nil(t, cmd)

	assert.False(t, s.inFlight)
	assert.Equal(t, int64(2), s.queue.LastSeen())
	require.Equal(t, 2, s.queue.Len())
	assert.Equal(t, int64(1), s.queue.Orders()[0].FoodOrderID)
}

func TestQueueStaleTickDropped(t *testing.T) {
	s := newTestQueueScreen(2)

	cmd := s.update(queueTickMsg{gen: 1})

	assert.Nil(t, cmd)
	assert.False(t, s.inFlight)
}

func TestQueueTickStartsPoll(t *testing.T) {
	s := newTestQueueScreen(1)

	cmd := s.update(queueTickMsg{gen: 1})

	require.NotNil(t, cmd)
	assert.True(t, s.inFlight)
}

func TestQueueTickWhileInFlightOnlyReschedules(t *testing.T) {
	s := newTestQueueScreen(1)
	s.inFlight = true
	s.queue.Merge([]model.Order{queuedOrder(4, 1)})

	cmd := s.update(queueTickMsg{gen: 1})

	// The tick reschedules itself but must not issue a second request or
	// touch the queue.
	require.NotNil(t, cmd)
	assert.True(t, s.inFlight)
	assert.Equal(t, 1, s.queue.Len())
	assert.Equal(t, int64(4), s.queue.LastSeen())
}

func TestQueueStalePollResultDropped(t *testing.T) {
	s := newTestQueueScreen(3)

	s.update(queuePolledMsg{gen: 2, orders: []model.Order{queuedOrder(9, 1)}})

	assert.Equal(t, 0, s.queue.Len())
	assert.Equal(t, int64(0), s.queue.LastSeen())
}

func TestQueuePollFailureLeavesQueueUnchanged(t *testing.T) {
	s := newTestQueueScreen(1)
	s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(1, 2), queuedOrder(2, 2)}})

	s.inFlight = true
	s.update(queuePollFailedMsg{gen: 1, err: errors.New("connection refused")})

	assert.False(t, s.inFlight)
	assert.Equal(t, "connection refused", s.pollErr)
	assert.Equal(t, 2, s.queue.Len())
	assert.Equal(t, int64(2), s.queue.LastSeen())
}

func TestQueueConfirmDecisionMarksInPlace(t *testing.T) {
	s := newTestQueueScreen(1)
	s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(1, 2), queuedOrder(2, 2)}})

	s.update(decisionDoneMsg{foodOrderID: 1, decision: api.DecisionConfirm})

	require.Equal(t, 2, s.queue.Len())
	first := s.queue.Orders()[0]
	require.NotNil(t, first.Confirmed)
	assert.True(t, *first.Confirmed)
}

func TestQueueRejectDecisionRemoves(t *testing.T) {
	s := newTestQueueScreen(1)
	s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(1, 2), queuedOrder(2, 2)}})

	s.update(decisionDoneMsg{foodOrderID: 1, decision: api.DecisionReject})

	require.Equal(t, 1, s.queue.Len())
	assert.Equal(t, int64(2), s.queue.Orders()[0].FoodOrderID)
	// The watermark still covers the removed order, so a later poll
	// cannot bring it back.
	assert.Equal(t, int64(2), s.queue.LastSeen())
}

func TestQueueFulfilDecisionRemoves(t *testing.T) {
	s := newTestQueueScreen(1)
	s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(5, 2)}})
	s.update(decisionDoneMsg{foodOrderID: 5, decision: api.DecisionConfirm})

	s.update(decisionDoneMsg{foodOrderID: 5, decision: api.DecisionFulfil})

	assert.Equal(t, 0, s.queue.Len())
}

func TestQueueDecisionFailureLeavesOrderPending(t *testing.T) {
	s := newTestQueueScreen(1)
	s.update(queuePolledMsg{gen: 1, orders: []model.Order{queuedOrder(1, 2)}})

	// A failed decision reaches the screen as a plain error; the order
	// must stay exactly as it was.
	s.update(model.ErrorMsg{Err: errors.New("boom")})

	require.Equal(t, 1, s.queue.Len())
	assert.Nil(t, s.queue.Orders()[0].Confirmed)
}

func TestQueueRefreshIgnoredWhileInFlight(t *testing.T) {
	s := newTestQueueScreen(1)
	s.inFlight = true

	cmd := s.update(keyMsg("r"))

	assert.Nil(t, cmd)
}
