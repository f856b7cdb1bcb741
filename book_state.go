package match

import (
	"github.com/shopspring/decimal"
)

// BookState is the mutable state shared by every order of one book: the
// price markers, the order registry, the named containers and the notifier.
// Prices are only written by order processing and trade making.
type BookState struct {
	marketID string
	cfg      *Config

	bid                 decimal.NullDecimal
	ask                 decimal.NullDecimal
	marketPrice         decimal.NullDecimal
	previousMarketPrice decimal.NullDecimal

	orders     map[string]Order
	containers map[string]*BinContainer
	notifier   Notifier
	tradeSeq   uint64
}

func newBookState(marketID string, notifier Notifier, cfg *Config) *BookState {
	return &BookState{
		marketID:   marketID,
		cfg:        cfg,
		orders:     make(map[string]Order),
		containers: make(map[string]*BinContainer),
		notifier:   notifier,
	}
}

func (s *BookState) MarketID() string {
	return s.marketID
}

func (s *BookState) Bid() decimal.NullDecimal {
	return s.bid
}

func (s *BookState) Ask() decimal.NullDecimal {
	return s.ask
}

func (s *BookState) MarketPrice() decimal.NullDecimal {
	return s.marketPrice
}

func (s *BookState) PreviousMarketPrice() decimal.NullDecimal {
	return s.previousMarketPrice
}

// FindOrder looks up a registered (resting limit or pending stop) order.
func (s *BookState) FindOrder(id string) (Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

func (s *BookState) registerOrder(o Order) {
	s.orders[o.ID()] = o
}

func (s *BookState) deregisterOrder(o Order) {
	delete(s.orders, o.ID())
}

// Container returns the container registered under name. The first call
// creates it with sortOrder; later calls ignore the argument.
func (s *BookState) Container(name string, sortOrder SortOrder) *BinContainer {
	c, ok := s.containers[name]
	if !ok {
		c = NewBinContainer(name, sortOrder)
		s.containers[name] = c
	}
	return c
}

// refreshSidePrice sets bid or ask to the current top of the side's limit container.
func (s *BookState) refreshSidePrice(side Side, c *BinContainer) {
	var p decimal.NullDecimal
	if top, ok := c.TopPrice(); ok {
		p = decimal.NewNullDecimal(top)
	}

	switch side {
	case Buy:
		s.bid = p
	case Sell:
		s.ask = p
	default:
		panic(ErrUnknownSide)
	}
}

func (s *BookState) shiftMarketPrice(price decimal.Decimal) {
	s.previousMarketPrice = s.marketPrice
	s.marketPrice = decimal.NewNullDecimal(price)
}

func (s *BookState) nextTradeID() uint64 {
	s.tradeSeq++
	return s.tradeSeq
}

func (s *BookState) notifyAccept(o Order) {
	if o.SuppressAccept() {
		return
	}
	s.notifier.OnAccept(o)
}

func (s *BookState) notifyReject(o Order, code ErrorCode) {
	logger.Debug("order rejected", "market_id", s.marketID, "order_id", o.ID(), "reason", code)
	s.notifier.OnReject(o, code)
}

func (s *BookState) notifyCancel(o Order, code ErrorCode) {
	logger.Debug("order cancelled", "market_id", s.marketID, "order_id", o.ID(), "reason", code)
	s.notifier.OnCancel(o, code)
}

func (s *BookState) notifyPlace(o Order) {
	if o.SuppressPlace() {
		return
	}
	s.notifier.OnPlace(o)
}

func (s *BookState) notifyDisplace(o Order) {
	s.notifier.OnDisplace(o)
}

func (s *BookState) notifyFill(fill *OrderFill) {
	s.notifier.OnFill(fill)
}

func (s *BookState) notifyTrade(trade *Trade) {
	s.notifier.OnTrade(trade)
}
