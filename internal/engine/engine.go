// Package engine implements the matching engine core: the two-sided
// book, the order-to-location index, the limit/market admission
// paths, cancel, and the crossing/match loop. It is synchronous and
// single-threaded per the design's concurrency model — callers must
// externally serialize access if sharing a Book across goroutines.
package engine

import (
	"github.com/ZaneH/order-book-v1/internal/book"
	"github.com/ZaneH/order-book-v1/internal/eventlog"
	"github.com/ZaneH/order-book-v1/internal/types"
)

// Book is the whole engine: both book sides, the order-id index, and
// the monotonic id/sequence counters.
type Book struct {
	bids *book.Side
	asks *book.Side

	orderIndex map[types.OrderId]*book.Handle

	nextOrderID types.OrderId
	nextMatchID types.MatchId

	log   *eventlog.Log
	debug bool
}

// New returns an empty Book writing accepted mutations to sink.
func New(sink eventlog.Sink) *Book {
	return &Book{
		bids:       book.NewBidSide(),
		asks:       book.NewAskSide(),
		orderIndex: make(map[types.OrderId]*book.Handle),
		log:        eventlog.New(sink),
	}
}

// NewDebug returns an empty Book that runs the invariant checker after
// every accepted mutation, panicking on violation. Intended for tests
// and debug builds, per the design's "checker is absent in release"
// contract.
func NewDebug(sink eventlog.Sink) *Book {
	b := New(sink)
	b.debug = true
	return b
}

// AddPayload is returned by a successful AddLimit/AddMarket call.
type AddPayload struct {
	OrderID         types.OrderId
	Status          types.OrderStatus
	ImmediateTrades []types.Trade
	RemainingQty    types.Quantity
}

// EventSeq returns the number of events appended to the log so far.
func (b *Book) EventSeq() uint64 { return b.log.EventSeq() }

// BestBid returns the highest resting bid price, if any.
func (b *Book) BestBid() (types.Price, bool) {
	lvl, ok := b.bids.Best()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// BestAsk returns the lowest resting ask price, if any.
func (b *Book) BestAsk() (types.Price, bool) {
	lvl, ok := b.asks.Best()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// DepthAt returns the aggregate resting quantity at price on side, or
// zero if no level exists there.
func (b *Book) DepthAt(side types.Side, price types.Price) types.Quantity {
	return b.sideOf(side).DepthAt(price)
}

// LevelView is a read-only snapshot of one price level, for callers
// that want to render or inspect the book without depending on the
// book package's internal Level/Handle types.
type LevelView struct {
	Price types.Price
	Qty   types.Quantity
}

// Levels returns every resting level on side, best-first.
func (b *Book) Levels(side types.Side) []LevelView {
	levels := b.sideOf(side).Levels()
	out := make([]LevelView, len(levels))
	for i, lvl := range levels {
		out[i] = LevelView{Price: lvl.Price, Qty: lvl.AggregateQty()}
	}
	return out
}

// RestingOrderCount returns the number of orders currently indexed
// (and thus resting on either side).
func (b *Book) RestingOrderCount() int {
	return len(b.orderIndex)
}

func (b *Book) sideOf(side types.Side) *book.Side {
	if side == types.Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) oppositeSideOf(side types.Side) *book.Side {
	return b.sideOf(side.Opposite())
}
