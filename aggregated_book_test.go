package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedBook() (*OrderBook, *LogNotifier, *MemoryPublishLog) {
	publisher := NewMemoryPublishLog()
	log := NewLogNotifier("BTC-USDT", publisher)
	return NewOrderBook("BTC-USDT", log), log, publisher
}

func assertSameLevels(t *testing.T, book *OrderBook, agg *AggregatedBook) {
	t.Helper()

	depth := book.Depth(100)
	bids, err := agg.Levels(Buy, 100)
	require.NoError(t, err)
	asks, err := agg.Levels(Sell, 100)
	require.NoError(t, err)

	levels := func(items []*DepthItem) [][2]string {
		out := make([][2]string, 0, len(items))
		for _, it := range items {
			out = append(out, [2]string{it.Price.String(), it.Size.String()})
		}
		return out
	}

	assert.Equal(t, levels(depth.Bids), levels(bids))
	assert.Equal(t, levels(depth.Asks), levels(asks))
}

func TestAggregatedBookReplay(t *testing.T) {
	book, _, publisher := newLoggedBook()

	book.AddOrder(newLimit("s1", Sell, "1", "101"))
	book.AddOrder(newLimit("s2", Sell, "2", "102"))
	book.AddOrder(newLimit("s3", Sell, "5", "102"))
	book.AddOrder(newLimit("b1", Buy, "3", "99"))
	book.AddOrder(newLimit("b2", Buy, "1", "98"))
	book.AddOrder(newLimit("b3", Buy, "2", "101.5")) // partial fill then rest
	book.CancelOrder("b2")
	book.AddOrder(newMarket("m1", Sell, "1.5"))
	book.AddOrder(NewStopLimitOrder(OrderOptions{ID: "st", Side: Buy, Size: d("1")}, d("101.6"), d("102")))
	book.AddOrder(newLimit("b4", Buy, "1", "102")) // trade at 102 converts st

	// st converted and filled against s2
	_, ok := book.Order("st")
	require.False(t, ok)

	agg := NewAggregatedBook()
	for _, log := range publisher.Logs() {
		require.NoError(t, agg.Replay(log))
	}

	assert.Equal(t, uint64(publisher.Count()), agg.SequenceID())
	assertSameLevels(t, book, agg)

	size, err := agg.Depth(Sell, d("102"))
	require.NoError(t, err)
	assert.Equal(t, "5", size.String())

	size, err = agg.Depth(Buy, d("98"))
	require.NoError(t, err)
	assert.True(t, size.IsZero())

	_, err = agg.Depth(Side(0), d("1"))
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestAggregatedBookSequence(t *testing.T) {
	book, _, publisher := newLoggedBook()
	book.AddOrder(newLimit("b1", Buy, "1", "10"))
	book.AddOrder(newLimit("b2", Buy, "1", "11"))

	logs := publisher.Logs()
	require.Len(t, logs, 4)

	agg := NewAggregatedBook()
	require.NoError(t, agg.Replay(logs[0]))
	require.NoError(t, agg.Replay(logs[1]))

	// duplicates are ignored
	require.NoError(t, agg.Replay(logs[0]))
	assert.Equal(t, uint64(2), agg.SequenceID())

	err := agg.Replay(logs[3])
	assert.ErrorIs(t, err, ErrSequenceGap)
	assert.Equal(t, uint64(2), agg.SequenceID())

	require.NoError(t, agg.Replay(logs[2]))
	require.NoError(t, agg.Replay(logs[3]))
	assertSameLevels(t, book, agg)
}

func TestAggregatedBookRebuild(t *testing.T) {
	book, log, publisher := newLoggedBook()

	book.AddOrder(newLimit("b1", Buy, "1", "10"))
	book.AddOrder(newLimit("b2", Buy, "2", "10"))
	book.AddOrder(newLimit("s1", Sell, "4", "12"))

	snap := book.Snapshot()
	snap.SeqID = log.SequenceID()
	publisher.Reset()

	book.AddOrder(newLimit("b3", Buy, "1", "12"))
	book.CancelOrder("b1")

	agg := NewAggregatedBook()
	require.NoError(t, agg.OnRebuild(snap))
	assert.Equal(t, snap.SeqID, agg.SequenceID())

	for _, l := range publisher.Logs() {
		require.NoError(t, agg.Replay(l))
	}
	assertSameLevels(t, book, agg)

	levels, err := agg.Levels(Buy, 1)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "10", levels[0].Price.String())
	assert.Equal(t, "2", levels[0].Size.String())
}

func TestCalculateDepthChange(t *testing.T) {
	t.Run("limit place adds", func(t *testing.T) {
		change := CalculateDepthChange(&BookLog{Type: LogTypePlace, OrderType: Limit, Side: Buy, Price: d("10"), Size: d("2")})
		assert.Equal(t, Buy, change.Side)
		assert.Equal(t, "2", change.SizeDiff.String())
	})

	t.Run("stop place is ignored", func(t *testing.T) {
		change := CalculateDepthChange(&BookLog{Type: LogTypePlace, OrderType: StopLimit, Side: Buy, Price: d("10"), Size: d("2")})
		assert.True(t, change.SizeDiff.IsZero())
	})

	t.Run("maker fill removes", func(t *testing.T) {
		change := CalculateDepthChange(&BookLog{Type: LogTypeFill, IsMaker: true, Side: Sell, Price: d("10"), Size: d("0.5")})
		assert.Equal(t, Sell, change.Side)
		assert.Equal(t, "-0.5", change.SizeDiff.String())
	})

	t.Run("taker fill is ignored", func(t *testing.T) {
		change := CalculateDepthChange(&BookLog{Type: LogTypeFill, Side: Buy, Price: d("10"), Size: d("0.5")})
		assert.True(t, change.SizeDiff.IsZero())
	})

	t.Run("cancel is ignored", func(t *testing.T) {
		change := CalculateDepthChange(&BookLog{Type: LogTypeCancel, OrderType: Limit, Side: Buy, Price: d("10"), Size: d("1")})
		assert.True(t, change.SizeDiff.IsZero())
	})
}
