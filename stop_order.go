package match

import (
	"github.com/shopspring/decimal"
)

// StopOrder is a pending order released once the market price moves past its
// stop price. A buy stop sits above the market, a sell stop below it.
type StopOrder interface {
	Order
	StopPrice() decimal.Decimal
	convert(state *BookState)
}

// StopLimitOrder becomes a LimitOrder at LimitPrice when triggered.
type StopLimitOrder struct {
	orderBase
	stopPrice  decimal.Decimal
	limitPrice decimal.Decimal
}

func NewStopLimitOrder(opts OrderOptions, stopPrice, limitPrice decimal.Decimal) *StopLimitOrder {
	return &StopLimitOrder{
		orderBase:  newOrderBase(opts, StopLimit),
		stopPrice:  stopPrice,
		limitPrice: limitPrice,
	}
}

func (o *StopLimitOrder) StopPrice() decimal.Decimal  { return o.stopPrice }
func (o *StopLimitOrder) LimitPrice() decimal.Decimal { return o.limitPrice }

func (o *StopLimitOrder) process(state *BookState) ErrorCode {
	return processStop(state, o)
}

func (o *StopLimitOrder) importInto(state *BookState) error {
	importStop(state, o)
	return nil
}

func (o *StopLimitOrder) cancel(state *BookState, code ErrorCode) bool {
	return cancelStop(state, o, code)
}

func (o *StopLimitOrder) convert(state *BookState) {
	removeStop(state, o)
	inject(state, &LimitOrder{
		orderBase: o.derive(Limit),
		price:     o.limitPrice,
	})
}

// StopMarketOrder becomes a MarketOrder when triggered, keeping its volume limit.
type StopMarketOrder struct {
	orderBase
	stopPrice   decimal.Decimal
	volumeLimit *VolumeLimit
}

// NewStopMarketOrder creates a stop market order. A nil limit means no volume cap.
func NewStopMarketOrder(opts OrderOptions, stopPrice decimal.Decimal, limit *VolumeLimit) *StopMarketOrder {
	return &StopMarketOrder{
		orderBase:   newOrderBase(opts, StopMarket),
		stopPrice:   stopPrice,
		volumeLimit: limit,
	}
}

func (o *StopMarketOrder) StopPrice() decimal.Decimal { return o.stopPrice }

// VolumeLimit returns the cap handed to the market order on conversion, or nil.
func (o *StopMarketOrder) VolumeLimit() *VolumeLimit { return o.volumeLimit }

func (o *StopMarketOrder) process(state *BookState) ErrorCode {
	return processStop(state, o)
}

func (o *StopMarketOrder) importInto(state *BookState) error {
	importStop(state, o)
	return nil
}

func (o *StopMarketOrder) cancel(state *BookState, code ErrorCode) bool {
	return cancelStop(state, o, code)
}

func (o *StopMarketOrder) convert(state *BookState) {
	removeStop(state, o)
	mo := &MarketOrder{orderBase: o.derive(Market)}
	mo.setVolumeLimit(o.volumeLimit)
	inject(state, mo)
}

// processStop accepts a stop only when it cannot fire immediately.
func processStop(state *BookState, o StopOrder) ErrorCode {
	if !state.marketPrice.Valid {
		return ErrorCodeNoTrades
	}

	market := state.marketPrice.Decimal
	switch o.Side() {
	case Buy:
		if o.StopPrice().LessThanOrEqual(market) {
			return ErrorCodeStopPriceTooLow
		}
	case Sell:
		if o.StopPrice().GreaterThanOrEqual(market) {
			return ErrorCodeStopPriceTooHigh
		}
	default:
		panic(ErrUnknownSide)
	}

	markAsAccepted(state, o)
	placeStop(state, o)
	return ErrorCodeNone
}

func placeStop(state *BookState, o StopOrder) {
	stopResolver.resolve(state, o.Side()).Insert(o.StopPrice(), o)
	state.registerOrder(o)
	state.notifyPlace(o)
}

func removeStop(state *BookState, o StopOrder) {
	state.notifyDisplace(o)
	stopResolver.resolve(state, o.Side()).Remove(o.StopPrice(), o)
	state.deregisterOrder(o)
}

func importStop(state *BookState, o StopOrder) {
	b := o.base()
	b.suppressAccept = true
	b.suppressPlace = true
	placeStop(state, o)
}

func cancelStop(state *BookState, o StopOrder, code ErrorCode) bool {
	registered := isRegistered(state, o)
	if registered {
		removeStop(state, o)
	}
	state.notifyCancel(o, code)
	return registered
}
