// Package book implements the two-sided price-indexed resting book:
// an ordered mapping from price to Level, each Level holding a FIFO of
// orders plus a cached aggregate quantity.
package book

import (
	"container/list"

	"github.com/ZaneH/order-book-v1/internal/types"
)

// Level holds all resting orders at a single price on one side, kept
// in strict arrival-order FIFO with a cached aggregate quantity that
// always equals the sum of the FIFO's order quantities.
//
// The FIFO is backed by container/list rather than a slice because
// Handle (see handle.go) stores a *list.Element: elements keep a
// stable identity across insertions and removals anywhere else in the
// list, which is what lets Cancel locate and unlink an order in O(1)
// without invalidating any other order's handle.
type Level struct {
	Price        types.Price
	aggregateQty types.Quantity
	orders       list.List // element.Value is *types.Order
}

func newLevel(price types.Price) *Level {
	lvl := &Level{Price: price}
	lvl.orders.Init()
	return lvl
}

// AggregateQty returns the cached sum of resting quantities at this level.
func (l *Level) AggregateQty() types.Quantity { return l.aggregateQty }

// Empty reports whether the level has no resting orders (I2: a Level
// in this state must not exist in a BookSide).
func (l *Level) Empty() bool { return l.orders.Len() == 0 }

// Len returns the number of resting orders at this level.
func (l *Level) Len() int { return l.orders.Len() }

// pushBack appends an order to the FIFO tail and returns the element
// backing its Handle.
func (l *Level) pushBack(o *types.Order) *list.Element {
	l.aggregateQty += o.Qty
	return l.orders.PushBack(o)
}

// front returns the element at the FIFO head, or nil if empty.
func (l *Level) front() *list.Element {
	return l.orders.Front()
}

// fill reduces the order at elem by qty and the level's aggregate to
// match, then erases the element if the order is now exhausted.
// Reports whether the order was erased.
func (l *Level) fill(elem *list.Element, qty types.Quantity) (erased bool) {
	o := elem.Value.(*types.Order)
	o.Qty = o.Qty.Sub(qty)
	l.aggregateQty = l.aggregateQty.Sub(qty)
	if o.Qty.IsZero() {
		l.orders.Remove(elem)
		return true
	}
	return false
}

// cancel removes elem unconditionally, subtracting its current
// quantity from the aggregate.
func (l *Level) cancel(elem *list.Element) {
	o := elem.Value.(*types.Order)
	l.aggregateQty = l.aggregateQty.Sub(o.Qty)
	l.orders.Remove(elem)
}

// Orders returns the resting orders in FIFO order. Intended for tests
// and read-only inspection; callers must not mutate the returned
// orders' Qty directly.
func (l *Level) Orders() []*types.Order {
	out := make([]*types.Order, 0, l.orders.Len())
	for e := l.orders.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*types.Order))
	}
	return out
}
