package engine

import (
	"github.com/ZaneH/order-book-v1/internal/book"
	"github.com/ZaneH/order-book-v1/internal/types"
)

// AddLimit admits a limit order. Rejection preconditions (qty == 0,
// then price == 0) are evaluated before any id is allocated or state
// mutated; a rejected call logs nothing. On acceptance the order
// either crosses immediately (in full or in part) against the
// opposite side, or rests per its time-in-force.
func (b *Book) AddLimit(userID types.UserId, side types.Side, price types.Price, qty types.Quantity, tif types.TimeInForce) (AddPayload, types.RejectReason, bool) {
	if qty.IsZero() {
		return AddPayload{}, types.BadQty, false
	}
	if price == 0 {
		return AddPayload{}, types.BadPrice, false
	}

	id := b.nextOrderID
	b.nextOrderID++

	order := types.NewLimitOrder(id, userID, side, price, qty, tif)

	opposite := b.oppositeSideOf(side)
	var trades []types.Trade
	if best, ok := opposite.Best(); ok && crosses(side, price, best.Price) {
		trades = b.match(&order, false)
	}

	payload := AddPayload{OrderID: id, ImmediateTrades: trades}

	switch {
	case order.Qty.IsZero():
		payload.Status = types.ImmediateFill
		payload.RemainingQty = 0

	case len(trades) > 0:
		payload.Status = types.PartialFill
		if tif == types.GTC {
			payload.RemainingQty = order.Qty
			b.rest(side, price, &order)
		} else {
			payload.RemainingQty = 0
		}

	default:
		payload.Status = types.AwaitingFill
		if tif == types.GTC {
			payload.RemainingQty = order.Qty
			b.rest(side, price, &order)
		} else {
			payload.RemainingQty = 0
		}
	}

	b.log.AppendAddLimit(userID, side, qty, price, tif)
	b.checkInvariants()

	return payload, types.NoReject, true
}

// AddMarket admits a market order, sweeping the opposite side
// immediately. Any residual quantity after the sweep is discarded;
// RemainingQty reports it even though it is not retained.
func (b *Book) AddMarket(userID types.UserId, side types.Side, qty types.Quantity) (AddPayload, types.RejectReason, bool) {
	if qty.IsZero() {
		return AddPayload{}, types.BadQty, false
	}

	opposite := b.oppositeSideOf(side)
	if _, ok := opposite.Best(); !ok {
		return AddPayload{}, types.EmptyBookForMarket, false
	}

	id := b.nextOrderID
	b.nextOrderID++

	order := types.NewMarketOrder(id, userID, side, qty)
	trades := b.match(&order, true)

	payload := AddPayload{
		OrderID:         id,
		ImmediateTrades: trades,
		RemainingQty:    order.Qty,
	}
	if order.Qty.IsZero() {
		payload.Status = types.ImmediateFill
	} else {
		payload.Status = types.PartialFill
	}

	b.log.AppendAddMarket(userID, side, qty)
	b.checkInvariants()

	return payload, types.NoReject, true
}

// Cancel removes a resting order by id. Reports false for an unknown
// id (a normal outcome, not an error) and logs no event in that case.
func (b *Book) Cancel(orderID types.OrderId) bool {
	h, ok := b.orderIndex[orderID]
	if !ok {
		return false
	}

	h.Cancel()
	delete(b.orderIndex, orderID)

	b.log.AppendCancel(orderID)
	b.checkInvariants()

	return true
}

// rest places order onto side at price: creates the level if absent,
// appends to its FIFO tail, and indexes the resulting handle.
func (b *Book) rest(side types.Side, price types.Price, order *types.Order) {
	h := book.Rest(b.sideOf(side), price, order)
	b.orderIndex[order.Id] = h
}

// crosses reports whether an incoming limit at price on side would
// cross against the opposite side's best price.
func crosses(side types.Side, price, oppositeBest types.Price) bool {
	if side == types.Buy {
		return price >= oppositeBest
	}
	return price <= oppositeBest
}
