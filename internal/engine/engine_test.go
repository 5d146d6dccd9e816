package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaneH/order-book-v1/internal/engine"
	"github.com/ZaneH/order-book-v1/internal/eventlog"
	"github.com/ZaneH/order-book-v1/internal/types"
)

func newTestBook() (*engine.Book, *eventlog.MemorySink) {
	sink := &eventlog.MemorySink{}
	return engine.NewDebug(sink), sink
}

// Scenario 1: single resting buy.
func TestSingleRestingBuy(t *testing.T) {
	b, sink := newTestBook()

	payload, reject, ok := b.AddLimit(0, types.Buy, 1, 5, types.GTC)
	require.True(t, ok)
	assert.Equal(t, types.NoReject, reject)
	assert.Equal(t, types.OrderId(0), payload.OrderID)
	assert.Equal(t, types.AwaitingFill, payload.Status)
	assert.Empty(t, payload.ImmediateTrades)

	assert.Equal(t, types.Quantity(5), b.DepthAt(types.Buy, 1))
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Sell, 1))

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, types.Price(1), bid)

	_, ok = b.BestAsk()
	assert.False(t, ok)

	assert.Equal(t, []string{"0 ADDLIMIT 0 BUY 5 1 GTC"}, sink.Lines)
}

// Scenario 2: crossing immediate fill.
func TestCrossingImmediateFill(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 10, 10, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(1, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	assert.Equal(t, types.ImmediateFill, payload.Status)
	assert.Equal(t, types.Quantity(0), payload.RemainingQty)
	require.Len(t, payload.ImmediateTrades, 1)

	trade := payload.ImmediateTrades[0]
	assert.Equal(t, types.UserId(0), trade.MakerId)
	assert.Equal(t, types.UserId(1), trade.TakerId)
	assert.Equal(t, types.Quantity(5), trade.Qty)
	assert.Equal(t, types.Price(10), trade.Price)

	assert.Equal(t, types.Quantity(5), b.DepthAt(types.Buy, 10))
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Sell, 10))
}

// Scenario 3: crossing partial fill, GTC rests the remainder.
func TestCrossingPartialFillRests(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 10, 10, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(0, types.Buy, 5, 2, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(9, types.Sell, 10, 20, types.GTC)
	require.True(t, ok)

	assert.Equal(t, types.PartialFill, payload.Status)
	assert.Equal(t, types.Quantity(10), payload.RemainingQty)
	require.Len(t, payload.ImmediateTrades, 1)
	assert.Equal(t, types.Quantity(10), payload.ImmediateTrades[0].Qty)
	assert.Equal(t, types.Price(10), payload.ImmediateTrades[0].Price)

	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Buy, 10))
	assert.Equal(t, types.Quantity(2), b.DepthAt(types.Buy, 5))
	assert.Equal(t, types.Quantity(10), b.DepthAt(types.Sell, 10))
}

// Scenario 4: walking multiple ask levels.
func TestWalkMultipleAskLevels(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Sell, 15, 10, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(0, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(9, types.Buy, 20, 10, types.GTC)
	require.True(t, ok)

	assert.Equal(t, types.ImmediateFill, payload.Status)
	assert.Equal(t, types.Quantity(0), payload.RemainingQty)
	require.Len(t, payload.ImmediateTrades, 2)
	assert.Equal(t, types.Quantity(5), payload.ImmediateTrades[0].Qty)
	assert.Equal(t, types.Price(10), payload.ImmediateTrades[0].Price)
	assert.Equal(t, types.Quantity(5), payload.ImmediateTrades[1].Qty)
	assert.Equal(t, types.Price(15), payload.ImmediateTrades[1].Price)

	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Sell, 10))
	assert.Equal(t, types.Quantity(5), b.DepthAt(types.Sell, 15))
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Buy, 20))
}

// Scenario 5: market order partial fill then discard.
func TestMarketPartialThenDiscard(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 10, 10, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(0, types.Buy, 8, 10, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddMarket(9, types.Sell, 50)
	require.True(t, ok)

	assert.Equal(t, types.PartialFill, payload.Status)
	assert.Equal(t, types.Quantity(30), payload.RemainingQty)
	require.Len(t, payload.ImmediateTrades, 2)
	assert.Equal(t, types.Quantity(10), payload.ImmediateTrades[0].Qty)
	assert.Equal(t, types.Price(10), payload.ImmediateTrades[0].Price)
	assert.Equal(t, types.Quantity(10), payload.ImmediateTrades[1].Qty)
	assert.Equal(t, types.Price(8), payload.ImmediateTrades[1].Price)

	_, ok = b.BestBid()
	assert.False(t, ok)
}

// Scenario 6: cancel after full trade fails.
func TestCancelAfterFullTradeFails(t *testing.T) {
	b, _ := newTestBook()

	p0, _, ok := b.AddLimit(0, types.Buy, 10, 10, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(1, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(2, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	assert.False(t, b.Cancel(p0.OrderID))
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Buy, 10))
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Sell, 10))
}

// Scenario 7: rejections.
func TestRejections(t *testing.T) {
	b, sink := newTestBook()

	_, reject, ok := b.AddLimit(0, types.Buy, 1, 0, types.GTC)
	assert.False(t, ok)
	assert.Equal(t, types.BadQty, reject)

	_, reject, ok = b.AddLimit(0, types.Buy, 0, 5, types.GTC)
	assert.False(t, ok)
	assert.Equal(t, types.BadPrice, reject)

	_, reject, ok = b.AddMarket(0, types.Sell, 5)
	assert.False(t, ok)
	assert.Equal(t, types.EmptyBookForMarket, reject)

	assert.Empty(t, sink.Lines, "rejections must not log events")
}

// Next order id is allocated only on acceptance, never on rejection.
func TestRejectionDoesNotConsumeOrderID(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 1, 0, types.GTC)
	assert.False(t, ok)

	payload, _, ok := b.AddLimit(0, types.Buy, 1, 5, types.GTC)
	require.True(t, ok)
	assert.Equal(t, types.OrderId(0), payload.OrderID)
}

// IOC with no cross: no rest, remaining reported as 0, event emitted.
func TestIOCNoCrossDiscardsAndLogsEvent(t *testing.T) {
	b, sink := newTestBook()

	payload, _, ok := b.AddLimit(0, types.Buy, 5, 10, types.IOC)
	require.True(t, ok)
	assert.Equal(t, types.AwaitingFill, payload.Status)
	assert.Equal(t, types.Quantity(0), payload.RemainingQty)

	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Buy, 5))
	_, ok = b.BestBid()
	assert.False(t, ok)

	require.Len(t, sink.Lines, 1)
	assert.Equal(t, "0 ADDLIMIT 0 BUY 10 5 IOC", sink.Lines[0])
}

// IOC partially filled: remainder discarded, reported as 0.
func TestIOCPartialFillDiscardsRemainder(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(1, types.Buy, 10, 20, types.IOC)
	require.True(t, ok)

	assert.Equal(t, types.PartialFill, payload.Status)
	assert.Equal(t, types.Quantity(0), payload.RemainingQty)
	assert.Equal(t, types.Quantity(0), b.DepthAt(types.Buy, 10))
}

// Cancel idempotence: a second cancel of the same id always fails.
func TestCancelIdempotence(t *testing.T) {
	b, _ := newTestBook()

	payload, _, ok := b.AddLimit(0, types.Buy, 1, 5, types.GTC)
	require.True(t, ok)

	assert.True(t, b.Cancel(payload.OrderID))
	assert.False(t, b.Cancel(payload.OrderID))
}

// Depth conservation under cancel: depth drops by exactly the
// cancelled order's quantity, and by zero at other prices.
func TestDepthConservationUnderCancel(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 10, 7, types.GTC)
	require.True(t, ok)
	target, _, ok := b.AddLimit(0, types.Buy, 10, 3, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(0, types.Buy, 9, 4, types.GTC)
	require.True(t, ok)

	assert.Equal(t, types.Quantity(10), b.DepthAt(types.Buy, 10))
	assert.Equal(t, types.Quantity(4), b.DepthAt(types.Buy, 9))

	assert.True(t, b.Cancel(target.OrderID))

	assert.Equal(t, types.Quantity(7), b.DepthAt(types.Buy, 10))
	assert.Equal(t, types.Quantity(4), b.DepthAt(types.Buy, 9))
}

// FIFO priority: the earliest-arrived order at a level fills first.
func TestFIFOPriorityWithinLevel(t *testing.T) {
	b, _ := newTestBook()

	first, _, ok := b.AddLimit(0, types.Buy, 10, 5, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(1, types.Buy, 10, 5, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(9, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	require.Len(t, payload.ImmediateTrades, 1)
	assert.Equal(t, types.UserId(0), payload.ImmediateTrades[0].MakerId)
	assert.Equal(t, types.Quantity(5), b.DepthAt(types.Buy, 10))
	assert.False(t, b.Cancel(first.OrderID), "the earlier order should have been fully consumed")
}

// Self-trading is permitted: a taker can match its own resting order.
func TestSelfTradePermitted(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(7, types.Buy, 10, 5, types.GTC)
	require.True(t, ok)

	payload, _, ok := b.AddLimit(7, types.Sell, 10, 5, types.GTC)
	require.True(t, ok)

	require.Len(t, payload.ImmediateTrades, 1)
	assert.Equal(t, types.UserId(7), payload.ImmediateTrades[0].MakerId)
	assert.Equal(t, types.UserId(7), payload.ImmediateTrades[0].TakerId)
}

// No crossed book: BestBid must stay strictly below BestAsk whenever
// both exist.
func TestNoCrossedBook(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 9, 5, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(1, types.Sell, 11, 5, types.GTC)
	require.True(t, ok)

	bid, ok := b.BestBid()
	require.True(t, ok)
	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Less(t, bid, ask)
}

func TestEventLogWireFormat(t *testing.T) {
	b, sink := newTestBook()

	_, _, ok := b.AddLimit(3, types.Sell, 7, 12, types.IOC)
	require.True(t, ok)
	_, _, ok = b.AddMarket(4, types.Buy, 1)
	assert.False(t, ok) // empty book, no event

	_, _, ok = b.AddLimit(3, types.Sell, 7, 12, types.GTC)
	require.True(t, ok)
	ok = b.Cancel(1)
	require.True(t, ok)

	require.Equal(t, []string{
		"0 ADDLIMIT 3 SELL 12 7 IOC",
		"1 ADDLIMIT 3 SELL 12 7 GTC",
		"2 CANCEL 1",
	}, sink.Lines)
	assert.Equal(t, uint64(3), b.EventSeq())
}

func TestLevelsAndRestingOrderCount(t *testing.T) {
	b, _ := newTestBook()

	_, _, ok := b.AddLimit(0, types.Buy, 10, 5, types.GTC)
	require.True(t, ok)
	_, _, ok = b.AddLimit(0, types.Buy, 9, 5, types.GTC)
	require.True(t, ok)

	levels := b.Levels(types.Buy)
	require.Len(t, levels, 2)
	assert.Equal(t, types.Price(10), levels[0].Price, "best bid first")
	assert.Equal(t, types.Price(9), levels[1].Price)

	assert.Equal(t, 2, b.RestingOrderCount())
}
