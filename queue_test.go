package match

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestBidContainer(t *testing.T) {
	c := NewBinContainer("LIMIT.BIDS", Descending)

	_, ok := c.TopOrder()
	assert.False(t, ok)

	o1 := newLimit("1", Buy, "2", "10")
	o2 := newLimit("2", Buy, "2", "12")
	o3 := newLimit("3", Buy, "3", "12")
	o4 := newLimit("4", Buy, "1", "9")

	for _, o := range []*LimitOrder{o1, o2, o3, o4} {
		c.Insert(o.Price(), o)
	}

	assert.Equal(t, int64(4), c.OrderCount())
	assert.Equal(t, int64(3), c.DepthCount())

	price, ok := c.TopPrice()
	assert.True(t, ok)
	assert.Equal(t, "12", price.String())

	top, _ := c.TopOrder()
	assert.Equal(t, "2", top.ID())

	// remove from the middle of the queue keeps the rest in order
	assert.True(t, c.Remove(o2.Price(), o2))
	top, _ = c.TopOrder()
	assert.Equal(t, "3", top.ID())

	assert.True(t, c.Remove(o3.Price(), o3))
	price, _ = c.TopPrice()
	assert.Equal(t, "10", price.String())
	assert.Equal(t, int64(2), c.DepthCount())

	assert.False(t, c.Remove(o3.Price(), o3))
	assert.False(t, c.Remove(d("11"), o1))
}

func TestAskContainer(t *testing.T) {
	c := NewBinContainer("LIMIT.ASKS", Ascending)

	o1 := newLimit("1", Sell, "2", "10")
	o2 := newLimit("2", Sell, "2", "12")
	o3 := newLimit("3", Sell, "3", "10")

	for _, o := range []*LimitOrder{o1, o2, o3} {
		c.Insert(o.Price(), o)
	}

	price, _ := c.TopPrice()
	assert.Equal(t, "10", price.String())

	var ids []string
	c.Each(func(_ decimal.Decimal, o Order) bool {
		ids = append(ids, o.ID())
		return true
	})
	assert.Equal(t, []string{"1", "3", "2"}, ids)

	ids = ids[:0]
	c.Each(func(_ decimal.Decimal, o Order) bool {
		ids = append(ids, o.ID())
		return len(ids) < 2
	})
	assert.Equal(t, []string{"1", "3"}, ids)

	depth := c.Depth(5)
	assert.Len(t, depth, 2)
	assert.Equal(t, "10", depth[0].Price.String())
	assert.Equal(t, "5", depth[0].Size.String())
	assert.Equal(t, int64(2), depth[0].Count)
	assert.Equal(t, uint32(1), depth[1].ID)

	assert.Len(t, c.Depth(1), 1)
}

func TestContainerNormalizesPrice(t *testing.T) {
	c := NewBinContainer("LIMIT.BIDS", Descending)

	a := newLimit("a", Buy, "1", "1.8")
	b := newLimit("b", Buy, "1", "1.80")
	c.Insert(a.Price(), a)
	c.Insert(b.Price(), b)

	assert.Equal(t, int64(1), c.DepthCount())
	assert.True(t, c.Remove(d("1.800"), a))

	top, _ := c.TopOrder()
	assert.Equal(t, "b", top.ID())
}

func TestContainerPriorityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sortOrder := SortOrder(rapid.IntRange(0, 1).Draw(t, "sortOrder"))
		c := NewBinContainer("TEST", sortOrder)

		n := rapid.IntRange(1, 100).Draw(t, "n")
		seq := make(map[Order]int, n)
		for i := 0; i < n; i++ {
			price := decimal.NewFromInt(rapid.Int64Range(1, 8).Draw(t, "price"))
			o := NewLimitOrder(OrderOptions{Side: Buy, Size: decimal.NewFromInt(1)}, price)
			seq[o] = i
			c.Insert(price, o)
		}

		var prev *LimitOrder
		for c.OrderCount() > 0 {
			top, ok := c.TopOrder()
			if !ok {
				t.Fatalf("no top with %d orders left", c.OrderCount())
			}
			lo := top.(*LimitOrder)

			if prev != nil {
				cmp := lo.Price().Cmp(prev.Price())
				if sortOrder == Descending {
					cmp = -cmp
				}
				if cmp < 0 {
					t.Fatalf("price %s came after %s", lo.Price(), prev.Price())
				}
				if cmp == 0 && seq[lo] < seq[prev] {
					t.Fatalf("order %d came after %d at the same price", seq[lo], seq[prev])
				}
			}

			if !c.Remove(lo.Price(), lo) {
				t.Fatalf("top order could not be removed")
			}
			prev = lo
		}

		if c.DepthCount() != 0 {
			t.Fatalf("%d empty levels left behind", c.DepthCount())
		}
	})
}
