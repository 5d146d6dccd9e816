package book

import (
	"container/list"

	"github.com/ZaneH/order-book-v1/internal/types"
)

// Handle is the order-id index's locator: an opaque reference to an
// order's owning side, level, and FIFO position, giving O(1) cancel.
// Handles remain valid across unrelated insertions and deletions
// elsewhere on the book, since they point at a stable *Level and a
// stable *list.Element rather than an index into a slice.
type Handle struct {
	Side *Side
	Lvl  *Level
	elem *list.Element
}

// Order returns the order this handle locates.
func (h *Handle) Order() *types.Order {
	return h.elem.Value.(*types.Order)
}

// Rest inserts order onto side at price, appending it to that level's
// FIFO tail, and returns the Handle to index it under.
func Rest(side *Side, price types.Price, order *types.Order) *Handle {
	lvl := side.GetOrCreate(price)
	elem := lvl.pushBack(order)
	return &Handle{Side: side, Lvl: lvl, elem: elem}
}

// Cancel removes the handle's order from its level unconditionally and
// deletes the level from its side if now empty.
func (h *Handle) Cancel() {
	h.Lvl.cancel(h.elem)
	h.Side.DeleteIfEmpty(h.Lvl)
}

// Fill reduces the handle's order by qty, erasing it from its level
// (and the level from its side, if now empty) if exhausted. Reports
// whether the order was erased.
func (h *Handle) Fill(qty types.Quantity) (erased bool) {
	erased = h.Lvl.fill(h.elem, qty)
	if erased {
		h.Side.DeleteIfEmpty(h.Lvl)
	}
	return erased
}

// Front returns the handle for the order resting at the head of lvl's
// FIFO, or nil if the level is empty. side must be the side lvl
// belongs to.
func Front(side *Side, lvl *Level) *Handle {
	elem := lvl.front()
	if elem == nil {
		return nil
	}
	return &Handle{Side: side, Lvl: lvl, elem: elem}
}
