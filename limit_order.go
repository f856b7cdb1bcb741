package match

import (
	"github.com/shopspring/decimal"
)

// LimitOrder trades at its price or better; the unfilled remainder rests in the book.
type LimitOrder struct {
	orderBase
	price decimal.Decimal
}

func NewLimitOrder(opts OrderOptions, price decimal.Decimal) *LimitOrder {
	return &LimitOrder{
		orderBase: newOrderBase(opts, Limit),
		price:     price,
	}
}

func (o *LimitOrder) Price() decimal.Decimal {
	return o.price
}

// crosses reports whether the opposite top price is acceptable for this order.
func (o *LimitOrder) crosses(top decimal.Decimal) bool {
	if o.side == Buy {
		return top.LessThanOrEqual(o.price)
	}
	return top.GreaterThanOrEqual(o.price)
}

func (o *LimitOrder) process(state *BookState) ErrorCode {
	opposite := limitResolver.resolve(state, oppositeSide(o.side))

	for !o.IsFullyExecuted() {
		top, ok := opposite.TopPrice()
		if !ok || !o.crosses(top) {
			break
		}

		resting, _ := topLimitOrder(opposite)
		if o.collidesWith(resting) {
			o.stpfViolated = true
			break
		}

		markAsAccepted(state, o)
		if makeTrade(state, o, resting) == nil {
			break
		}
	}

	if o.stpfViolated {
		if o.IsUntouched() {
			return ErrorCodeWashTradeDenied
		}
		o.cancel(state, ErrorCodeWashTradeDenied)
		return ErrorCodeNone
	}

	if !o.IsFullyExecuted() {
		markAsAccepted(state, o)
		o.placeIntoBook(state)
	}

	return ErrorCodeNone
}

func (o *LimitOrder) placeIntoBook(state *BookState) {
	c := limitResolver.resolve(state, o.side)
	c.Insert(o.price, o)
	state.registerOrder(o)
	state.refreshSidePrice(o.side, c)
	state.notifyPlace(o)
}

func (o *LimitOrder) removeFromBook(state *BookState) {
	state.notifyDisplace(o)
	c := limitResolver.resolve(state, o.side)
	c.Remove(o.price, o)
	state.deregisterOrder(o)
	state.refreshSidePrice(o.side, c)
}

func (o *LimitOrder) importInto(state *BookState) error {
	o.suppressAccept = true
	o.suppressPlace = true
	o.placeIntoBook(state)
	return nil
}

func (o *LimitOrder) cancel(state *BookState, code ErrorCode) bool {
	registered := isRegistered(state, o)
	if registered {
		o.removeFromBook(state)
	}
	state.notifyCancel(o, code)
	return registered
}

// isRegistered reports whether o itself, not just its id, is in the registry.
func isRegistered(state *BookState, o Order) bool {
	found, ok := state.FindOrder(o.ID())
	return ok && found == o
}
