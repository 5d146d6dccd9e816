package types

import "fmt"

// Order is the per-order datum resting in (or passing through) the
// book. Price and Tif are absent for market orders. Qty is the
// remaining quantity and monotonically decreases until zero, at which
// point the order is erased from its level.
type Order struct {
	Id      OrderId
	Creator UserId
	Side    Side
	Qty     Quantity

	Price  Price       // zero value meaningless unless HasPrice
	Tif    TimeInForce // zero value meaningless unless HasPrice
	isRest bool        // true for limit orders: Price/Tif are present
}

// NewLimitOrder builds a resting-eligible order with an explicit price
// and time-in-force.
func NewLimitOrder(id OrderId, creator UserId, side Side, price Price, qty Quantity, tif TimeInForce) Order {
	return Order{
		Id:      id,
		Creator: creator,
		Side:    side,
		Qty:     qty,
		Price:   price,
		Tif:     tif,
		isRest:  true,
	}
}

// NewMarketOrder builds an order with no price or time-in-force.
func NewMarketOrder(id OrderId, creator UserId, side Side, qty Quantity) Order {
	return Order{
		Id:      id,
		Creator: creator,
		Side:    side,
		Qty:     qty,
	}
}

// HasPrice reports whether this order carries a limit price (and thus
// a time-in-force); false for market orders.
func (o *Order) HasPrice() bool { return o.isRest }

func (o Order) String() string {
	if o.isRest {
		return fmt.Sprintf("Order{id=%d creator=%d side=%s qty=%d price=%d tif=%s}",
			o.Id, o.Creator, o.Side, o.Qty, o.Price, o.Tif)
	}
	return fmt.Sprintf("Order{id=%d creator=%d side=%s qty=%d market}",
		o.Id, o.Creator, o.Side, o.Qty)
}

// Trade records one maker/taker fill.
type Trade struct {
	MakerId UserId
	TakerId UserId
	MatchId MatchId
	OrderId OrderId // the taker's order id
	Qty     Quantity
	Price   Price // the maker's resting price at match time
}
