package match

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderBook is a single-market matching book. It is not safe for concurrent
// use; every call runs matching, trades and stop conversions to completion
// before returning.
type OrderBook struct {
	state *BookState
}

// NewOrderBook creates an order book with the default configuration.
// A nil notifier discards every event.
func NewOrderBook(marketID string, notifier Notifier) *OrderBook {
	return NewOrderBookWithConfig(marketID, notifier, DefaultConfig())
}

// NewOrderBookWithConfig creates an order book using cfg.
func NewOrderBookWithConfig(marketID string, notifier Notifier, cfg *Config) *OrderBook {
	if notifier == nil {
		notifier = DiscardNotifier{}
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &OrderBook{
		state: newBookState(marketID, notifier, cfg),
	}
}

func (book *OrderBook) MarketID() string {
	return book.state.marketID
}

// AddOrder runs the order through the matching pipeline.
func (book *OrderBook) AddOrder(order Order) *ProcessingResult {
	return inject(book.state, order)
}

// CancelOrder removes a resting limit or pending stop order. It returns false
// and emits nothing when no order with id is registered.
func (book *OrderBook) CancelOrder(id string) bool {
	order, ok := book.state.FindOrder(id)
	if !ok {
		return false
	}
	return order.cancel(book.state, ErrorCodeNone)
}

// ImportOrder places a persisted order straight into the book, skipping
// matching and the accept/place events. Market orders cannot be imported.
func (book *OrderBook) ImportOrder(order Order) error {
	if !order.Size().IsPositive() {
		return fmt.Errorf("%w: order %s has no remaining size", ErrInvalidParam, order.ID())
	}
	if _, ok := book.state.FindOrder(order.ID()); ok {
		return ErrDuplicateOrderID
	}
	return order.importInto(book.state)
}

// ImportBookData overwrites the book prices that are set in data. The caller
// keeps them consistent with the imported orders.
func (book *OrderBook) ImportBookData(data BookData) {
	s := book.state
	if data.Bid.Valid {
		s.bid = data.Bid
	}
	if data.Ask.Valid {
		s.ask = data.Ask
	}
	if data.MarketPrice.Valid {
		s.marketPrice = data.MarketPrice
	}
	if data.PreviousMarketPrice.Valid {
		s.previousMarketPrice = data.PreviousMarketPrice
	}
}

func (book *OrderBook) Bid() decimal.NullDecimal {
	return book.state.Bid()
}

func (book *OrderBook) Ask() decimal.NullDecimal {
	return book.state.Ask()
}

func (book *OrderBook) MarketPrice() decimal.NullDecimal {
	return book.state.MarketPrice()
}

func (book *OrderBook) PreviousMarketPrice() decimal.NullDecimal {
	return book.state.PreviousMarketPrice()
}

// Order returns a registered order by id.
func (book *OrderBook) Order(id string) (Order, bool) {
	return book.state.FindOrder(id)
}

// Depth returns the resting limit liquidity up to limit levels per side.
// A zero limit uses the configured default.
func (book *OrderBook) Depth(limit uint32) *Depth {
	if limit == 0 {
		limit = book.state.cfg.DepthLimit
	}

	return &Depth{
		Asks: limitResolver.resolve(book.state, Sell).Depth(limit),
		Bids: limitResolver.resolve(book.state, Buy).Depth(limit),
	}
}

// Stats returns usage statistics for the order book containers.
func (book *OrderBook) Stats() *BookStats {
	asks := limitResolver.resolve(book.state, Sell)
	bids := limitResolver.resolve(book.state, Buy)

	return &BookStats{
		AskDepthCount:  asks.DepthCount(),
		AskOrderCount:  asks.OrderCount(),
		BidDepthCount:  bids.DepthCount(),
		BidOrderCount:  bids.OrderCount(),
		StopOrderCount: stopResolver.resolve(book.state, Buy).OrderCount() + stopResolver.resolve(book.state, Sell).OrderCount(),
	}
}
