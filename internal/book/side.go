package book

import (
	"github.com/tidwall/btree"

	"github.com/ZaneH/order-book-v1/internal/types"
)

// Side is one book side: an ordered mapping from Price to Level,
// backed by a tidwall/btree.BTreeG keyed by price. Bids are ordered
// descending (best bid first), asks ascending (best ask first).
type Side struct {
	levels *btree.BTreeG[*Level]
}

// NewBidSide returns an empty side ordered descending by price.
func NewBidSide() *Side {
	return &Side{levels: btree.NewBTreeG(func(a, b *Level) bool {
		return a.Price > b.Price
	})}
}

// NewAskSide returns an empty side ordered ascending by price.
func NewAskSide() *Side {
	return &Side{levels: btree.NewBTreeG(func(a, b *Level) bool {
		return a.Price < b.Price
	})}
}

// Best returns the best (first-ordered) level on this side, or nil if
// the side is empty.
func (s *Side) Best() (*Level, bool) {
	return s.levels.Min()
}

// Get returns the level resting at price, or nil if none exists.
func (s *Side) Get(price types.Price) (*Level, bool) {
	return s.levels.Get(&Level{Price: price})
}

// GetOrCreate returns the level at price, creating and inserting an
// empty one if it doesn't already exist.
func (s *Side) GetOrCreate(price types.Price) *Level {
	if lvl, ok := s.levels.Get(&Level{Price: price}); ok {
		return lvl
	}
	lvl := newLevel(price)
	s.levels.Set(lvl)
	return lvl
}

// DeleteIfEmpty removes lvl from the side if it has no resting orders.
// Must be called after any fill or cancel that might have exhausted
// the level's last order, to uphold I2 (no empty levels).
func (s *Side) DeleteIfEmpty(lvl *Level) {
	if lvl.Empty() {
		s.levels.Delete(lvl)
	}
}

// DepthAt returns the aggregate quantity resting at price, or zero if
// no level exists there.
func (s *Side) DepthAt(price types.Price) types.Quantity {
	lvl, ok := s.Get(price)
	if !ok {
		return 0
	}
	return lvl.AggregateQty()
}

// Levels returns every level on this side in best-first order.
func (s *Side) Levels() []*Level {
	return s.levels.Items()
}

// LevelCount returns the number of distinct price levels on this side.
func (s *Side) LevelCount() int {
	return s.levels.Len()
}
