package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ZaneH/order-book-v1/internal/book"
	"github.com/ZaneH/order-book-v1/internal/types"
)

// checkInvariants runs AssertInvariants when the book was constructed
// via NewDebug. In a non-debug Book this is a no-op, matching the
// "checker absent in release builds" contract.
func (b *Book) checkInvariants() {
	if !b.debug {
		return
	}
	b.AssertInvariants()
}

// AssertInvariants verifies, across both sides: each level's cached
// aggregate equals the sum of its resting orders' quantities, no level
// has an empty FIFO, and no order rests with zero quantity. It also
// checks that the order-id index contains exactly the resting orders,
// by comparing its size against the total count gathered from both
// sides. Violations are fatal programming errors: AssertInvariants
// logs the failure and panics.
func (b *Book) AssertInvariants() {
	count := 0
	count += checkSide(b.bids)
	count += checkSide(b.asks)

	if count != len(b.orderIndex) {
		fail("order index size %d does not match resting order count %d", len(b.orderIndex), count)
	}
}

func checkSide(side *book.Side) int {
	total := 0
	for _, lvl := range side.Levels() {
		if lvl.Empty() {
			fail("empty level at price %d", lvl.Price)
		}

		var sum types.Quantity
		for _, o := range lvl.Orders() {
			if o.Qty.IsZero() {
				fail("zero-quantity order %d resting at price %d", o.Id, lvl.Price)
			}
			sum += o.Qty
			total++
		}
		if sum != lvl.AggregateQty() {
			fail("level at price %d has aggregate %d, sum of orders is %d", lvl.Price, lvl.AggregateQty(), sum)
		}
	}
	return total
}

func fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Error().Str("invariant", msg).Msg("order book invariant violated")
	panic("order book invariant violated: " + msg)
}
