package engine

import (
	"github.com/ZaneH/order-book-v1/internal/book"
	"github.com/ZaneH/order-book-v1/internal/types"
)

// match walks the opposite side of taker, consuming resting orders in
// price-then-FIFO-time priority until taker is exhausted or no further
// price level would be accepted. It mutates taker.Qty down to its
// unfilled remainder and returns every trade produced, in fill order.
//
// isMarket disables the limit-price acceptance test: a market order
// accepts any price the opposite side offers.
func (b *Book) match(taker *types.Order, isMarket bool) []types.Trade {
	opposite := b.oppositeSideOf(taker.Side)

	bestLvl, ok := opposite.Best()
	if !ok {
		return nil
	}
	bestPrice := bestLvl.Price

	var trades []types.Trade
	for !taker.Qty.IsZero() {
		lvl, ok := opposite.Get(bestPrice)
		if !ok {
			// The level at bestPrice has been fully consumed and
			// erased (or this is a re-entry after exhausting it).
			// Advance to the next best price and re-test acceptance.
			nextLvl, ok := opposite.Best()
			if !ok {
				break
			}
			next := nextLvl.Price
			if !accepts(taker, next, isMarket) {
				break
			}
			bestPrice = next
			continue
		}

		maker := book.Front(opposite, lvl)
		makerOrder := maker.Order()

		fill := types.MinQuantity(makerOrder.Qty, taker.Qty)
		makerID := makerOrder.Id
		makerCreator := makerOrder.Creator
		makerPrice := makerOrder.Price

		erased := maker.Fill(fill)
		taker.Qty = taker.Qty.Sub(fill)

		matchID := b.nextMatchID
		b.nextMatchID++

		trades = append(trades, types.Trade{
			MakerId: makerCreator,
			TakerId: taker.Creator,
			MatchId: matchID,
			OrderId: taker.Id,
			Qty:     fill,
			Price:   makerPrice,
		})

		if erased {
			delete(b.orderIndex, makerID)
		}
	}

	return trades
}

// accepts reports whether a taker would cross at candidate price:
// unconditionally for a market order, or per the taker's own limit
// price and side otherwise.
func accepts(taker *types.Order, candidate types.Price, isMarket bool) bool {
	if isMarket {
		return true
	}
	if taker.Side == types.Buy {
		return candidate <= taker.Price
	}
	return candidate >= taker.Price
}
