package match

import (
	"fmt"
	"sync/atomic"

	"github.com/igrmk/treemap/v2"
	"github.com/shopspring/decimal"
)

// AggregatedBook maintains a simplified view of the order book,
// tracking only limit price levels and their aggregated sizes (depth).
// It is designed for downstream services that rebuild book state from the
// BookLog stream: OnRebuild from a snapshot, then Replay every later log.
type AggregatedBook struct {
	seqID atomic.Uint64 // Last processed SequenceID for gap detection and deduplication
	ask   *treemap.TreeMap[decimal.Decimal, decimal.Decimal]
	bid   *treemap.TreeMap[decimal.Decimal, decimal.Decimal]
}

func newPriceTree() *treemap.TreeMap[decimal.Decimal, decimal.Decimal] {
	return treemap.NewWithKeyCompare[decimal.Decimal, decimal.Decimal](func(a, b decimal.Decimal) bool {
		return a.LessThan(b)
	})
}

// NewAggregatedBook creates a new AggregatedBook instance with empty ask and bid sides.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		ask: newPriceTree(),
		bid: newPriceTree(),
	}
}

// SequenceID returns the last processed sequence ID.
func (ab *AggregatedBook) SequenceID() uint64 {
	return ab.seqID.Load()
}

func (ab *AggregatedBook) tree(side Side) (*treemap.TreeMap[decimal.Decimal, decimal.Decimal], error) {
	switch side {
	case Buy:
		return ab.bid, nil
	case Sell:
		return ab.ask, nil
	}
	return nil, fmt.Errorf("%w: side %d", ErrInvalidParam, side)
}

// Replay applies a BookLog event to update the aggregated book state.
// Logs at or below the current sequence ID are ignored. A log that skips a
// sequence ID returns ErrSequenceGap and leaves the book unchanged.
func (ab *AggregatedBook) Replay(log *BookLog) error {
	current := ab.seqID.Load()
	if log.SequenceID <= current {
		return nil
	}
	if log.SequenceID != current+1 {
		return fmt.Errorf("%w: expected %d, got %d", ErrSequenceGap, current+1, log.SequenceID)
	}

	change := CalculateDepthChange(log)
	if !change.SizeDiff.IsZero() {
		if err := ab.apply(change); err != nil {
			return err
		}
	}

	ab.seqID.Store(log.SequenceID)
	return nil
}

func (ab *AggregatedBook) apply(change DepthChange) error {
	tree, err := ab.tree(change.Side)
	if err != nil {
		return err
	}

	size, _ := tree.Get(change.Price)
	size = size.Add(change.SizeDiff)

	if size.IsPositive() {
		tree.Set(change.Price, size)
	} else {
		tree.Del(change.Price)
	}
	return nil
}

// OnRebuild resets the aggregated book to the resting limit orders of snap.
// This should be called before replaying events from the message queue.
func (ab *AggregatedBook) OnRebuild(snap *BookSnapshot) error {
	ab.ask.Clear()
	ab.bid.Clear()

	for _, list := range [][]*OrderState{snap.Bids, snap.Asks} {
		for _, o := range list {
			err := ab.apply(DepthChange{Side: o.Side, Price: o.Price, SizeDiff: o.Size})
			if err != nil {
				return err
			}
		}
	}

	ab.seqID.Store(snap.SeqID)
	return nil
}

// Depth returns the aggregated size at a specific price level for the given side.
// Returns zero if the price level does not exist.
func (ab *AggregatedBook) Depth(side Side, price decimal.Decimal) (decimal.Decimal, error) {
	tree, err := ab.tree(side)
	if err != nil {
		return decimal.Zero, err
	}

	size, ok := tree.Get(price)
	if !ok {
		return decimal.Zero, nil
	}
	return size, nil
}

// Levels returns up to limit price levels of side, best price first.
func (ab *AggregatedBook) Levels(side Side, limit uint32) ([]*DepthItem, error) {
	tree, err := ab.tree(side)
	if err != nil {
		return nil, err
	}

	result := make([]*DepthItem, 0, min(int(limit), tree.Len()))

	var i uint32
	if side == Sell {
		for it := tree.Iterator(); it.Valid() && i < limit; it.Next() {
			result = append(result, &DepthItem{ID: i, Price: it.Key(), Size: it.Value()})
			i++
		}
	} else {
		for it := tree.Reverse(); it.Valid() && i < limit; it.Next() {
			result = append(result, &DepthItem{ID: i, Price: it.Key(), Size: it.Value()})
			i++
		}
	}

	return result, nil
}
