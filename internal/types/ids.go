// Package types defines the strong identifiers and enumerations shared
// across the order book: order/user/match ids, prices, quantities, and
// the small closed enums (side, time-in-force, status, reject reason).
package types

import "fmt"

// OrderId uniquely identifies an order for the lifetime of the engine.
// Allocated monotonically starting at 0; never reused.
type OrderId uint32

// UserId identifies the trader that created an order.
type UserId uint32

// MatchId uniquely identifies one maker/taker fill. Allocated
// monotonically starting at 0 across the engine's lifetime.
type MatchId uint32

// Price is an unsigned tick value. Zero is reserved and invalid for
// limit order entry.
type Price uint32

// Quantity is an unsigned order size. Zero is invalid for order entry
// but is a valid transient value immediately before an order is erased.
type Quantity uint32

func (q Quantity) IsZero() bool { return q == 0 }

// Sub returns q - other, or 0 if other would make it negative. Callers
// in the match loop never subtract more than q holds, so this never
// clamps in practice; it exists to keep the type unsigned-safe.
func (q Quantity) Sub(other Quantity) Quantity {
	if other > q {
		return 0
	}
	return q - other
}

func MinQuantity(a, b Quantity) Quantity {
	if a < b {
		return a
	}
	return b
}

// Side is the direction of an order.
type Side int8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// TimeInForce governs what happens to an unfilled limit remainder.
type TimeInForce int8

const (
	GTC TimeInForce = iota // Good-Till-Cancel: unfilled remainder rests.
	IOC                    // Immediate-Or-Cancel: unfilled remainder is discarded.
)

func (t TimeInForce) String() string {
	if t == GTC {
		return "GTC"
	}
	return "IOC"
}

// OrderStatus is the outcome reported back from an admission call.
type OrderStatus int8

const (
	AwaitingFill OrderStatus = iota
	PartialFill
	ImmediateFill
	Rejected
)

func (s OrderStatus) String() string {
	switch s {
	case AwaitingFill:
		return "AwaitingFill"
	case PartialFill:
		return "PartialFill"
	case ImmediateFill:
		return "ImmediateFill"
	case Rejected:
		return "Rejected"
	default:
		return fmt.Sprintf("OrderStatus(%d)", int8(s))
	}
}

// RejectReason categorizes why an admission call was refused.
type RejectReason int8

const (
	NoReject RejectReason = iota
	BadPrice
	BadQty
	EmptyBookForMarket
)

func (r RejectReason) String() string {
	switch r {
	case NoReject:
		return "NoReject"
	case BadPrice:
		return "BadPrice"
	case BadQty:
		return "BadQty"
	case EmptyBookForMarket:
		return "EmptyBookForMarket"
	default:
		return fmt.Sprintf("RejectReason(%d)", int8(r))
	}
}
