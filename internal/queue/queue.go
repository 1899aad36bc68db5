// Package queue holds the operator-side order queue: the orders awaiting
// a decision, in arrival order, guarded by a high-watermark so repeated
// poll responses never duplicate an order.
package queue

import "tablenest/internal/model"

// Queue is the in-memory order queue for one restaurant. lastSeen is the
// highest order identifier merged so far; Merge never inserts an order at
// or below it. Removed orders are dropped entirely rather than hidden,
// and the watermark alone prevents their re-insertion.
type Queue struct {
	lastSeen int64
	ids      []int64
	orders   map[int64]model.Order
}

// New returns an empty queue with watermark zero.
func New() *Queue {
	return &Queue{orders: make(map[int64]model.Order)}
}

// Merge appends the orders from one poll response to the tail of the
// queue, preserving response order and skipping any with an identifier at
// or below the watermark. The watermark advances to the highest
// identifier observed; an empty batch leaves it unchanged.
func (q *Queue) Merge(orders []model.Order) {
	for _, o := range orders {
		if o.FoodOrderID <= q.lastSeen {
			continue
		}
		q.ids = append(q.ids, o.FoodOrderID)
		q.orders[o.FoodOrderID] = o
		q.lastSeen = o.FoodOrderID
	}
}

// Remove drops the order with the given identifier. Removing an absent
// identifier is a no-op.
func (q *Queue) Remove(foodOrderID int64) {
	if _, ok := q.orders[foodOrderID]; !ok {
		return
	}
	delete(q.orders, foodOrderID)
	for i, id := range q.ids {
		if id == foodOrderID {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			break
		}
	}
}

// Confirm marks the order with the given identifier as accepted, in
// place. Confirming an absent identifier is a no-op.
func (q *Queue) Confirm(foodOrderID int64) {
	o, ok := q.orders[foodOrderID]
	if !ok {
		return
	}
	confirmed := true
	o.Confirmed = &confirmed
	q.orders[foodOrderID] = o
}

// Get returns the order with the given identifier, if present.
func (q *Queue) Get(foodOrderID int64) (model.Order, bool) {
	o, ok := q.orders[foodOrderID]
	return o, ok
}

// Orders returns the live orders in arrival order.
func (q *Queue) Orders() []model.Order {
	out := make([]model.Order, 0, len(q.ids))
	for _, id := range q.ids {
		out = append(out, q.orders[id])
	}
	return out
}

// LastSeen returns the current watermark.
func (q *Queue) LastSeen() int64 {
	return q.lastSeen
}

// Len returns the number of live orders.
func (q *Queue) Len() int {
	return len(q.ids)
}
