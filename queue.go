package match

import (
	"slices"

	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

// SortOrder is the fixed price direction of a BinContainer.
type SortOrder int8

const (
	Ascending  SortOrder = iota // lowest price on top
	Descending                  // highest price on top
)

// priceBin is the FIFO queue of orders resting at one price.
type priceBin struct {
	price  decimal.Decimal
	orders []Order
}

// BinContainer keeps orders grouped by price. Distinct prices live in a
// skiplist sorted by the container's direction; each price maps to a FIFO bin.
// The front of the skiplist is always the top of the container.
type BinContainer struct {
	name        string
	sortOrder   SortOrder
	totalOrders int64
	depthList   *skiplist.SkipList
	priceList   map[string]*skiplist.Element
}

// NewBinContainer creates an empty container. The direction cannot be changed later.
func NewBinContainer(name string, sortOrder SortOrder) *BinContainer {
	var cmp skiplist.GreaterThanFunc
	if sortOrder == Descending {
		cmp = func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d2.Cmp(d1)
		}
	} else {
		cmp = func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d1.Cmp(d2)
		}
	}

	return &BinContainer{
		name:      name,
		sortOrder: sortOrder,
		depthList: skiplist.New(cmp),
		priceList: make(map[string]*skiplist.Element),
	}
}

// priceKey normalizes a price so that 1.8 and 1.80 share a bin.
func priceKey(price decimal.Decimal) string {
	return price.String()
}

// Name returns the registry name, e.g. LIMIT.BIDS.
func (c *BinContainer) Name() string {
	return c.name
}

func (c *BinContainer) SortOrder() SortOrder {
	return c.sortOrder
}

// TopPrice returns the best price, if any.
func (c *BinContainer) TopPrice() (decimal.Decimal, bool) {
	el := c.depthList.Front()
	if el == nil {
		return decimal.Decimal{}, false
	}
	bin, _ := el.Value.(*priceBin)
	return bin.price, true
}

// TopOrder returns the earliest order at the best price, if any.
func (c *BinContainer) TopOrder() (Order, bool) {
	el := c.depthList.Front()
	if el == nil {
		return nil, false
	}
	bin, _ := el.Value.(*priceBin)
	return bin.orders[0], true
}

// Insert appends the order to the back of the bin at price, creating the bin
// when the price is new.
func (c *BinContainer) Insert(price decimal.Decimal, order Order) {
	key := priceKey(price)

	el, ok := c.priceList[key]
	if ok {
		bin, _ := el.Value.(*priceBin)
		bin.orders = append(bin.orders, order)
		c.totalOrders++
		return
	}

	bin := &priceBin{
		price:  price,
		orders: []Order{order},
	}
	c.priceList[key] = c.depthList.Set(price, bin)
	c.totalOrders++
}

// Remove takes the order out of the bin at price. The bin and its index entry
// are dropped as soon as the bin is empty. It reports whether the order was found.
func (c *BinContainer) Remove(price decimal.Decimal, order Order) bool {
	key := priceKey(price)

	el, ok := c.priceList[key]
	if !ok {
		return false
	}
	bin, _ := el.Value.(*priceBin)

	idx := slices.Index(bin.orders, order)
	if idx < 0 {
		return false
	}

	bin.orders = slices.Delete(bin.orders, idx, idx+1)
	c.totalOrders--

	if len(bin.orders) == 0 {
		c.depthList.RemoveElement(el)
		delete(c.priceList, key)
	}

	return true
}

// OrderCount returns the total number of orders in the container.
func (c *BinContainer) OrderCount() int64 {
	return c.totalOrders
}

// DepthCount returns the number of price levels in the container.
func (c *BinContainer) DepthCount() int64 {
	return int64(len(c.priceList))
}

// Each visits every order in priority order: best price first, FIFO within a
// price. Iteration stops when fn returns false. fn must not mutate the container.
func (c *BinContainer) Each(fn func(price decimal.Decimal, order Order) bool) {
	for el := c.depthList.Front(); el != nil; el = el.Next() {
		bin, _ := el.Value.(*priceBin)
		for _, o := range bin.orders {
			if !fn(bin.price, o) {
				return
			}
		}
	}
}

// Depth returns up to limit aggregated price levels, best price first.
func (c *BinContainer) Depth(limit uint32) []*DepthItem {
	result := make([]*DepthItem, 0, min(int(limit), len(c.priceList)))

	el := c.depthList.Front()

	var i uint32 = 0
	for i < limit && el != nil {
		bin, _ := el.Value.(*priceBin)

		size := decimal.Zero
		for _, o := range bin.orders {
			size = size.Add(o.Size())
		}

		result = append(result, &DepthItem{
			ID:    i,
			Price: bin.price,
			Size:  size,
			Count: int64(len(bin.orders)),
		})

		el = el.Next()
		i++
	}

	return result
}
