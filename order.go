package match

import (
	"github.com/shopspring/decimal"
)

// Order is one of LimitOrder, MarketOrder, StopLimitOrder or StopMarketOrder.
// The set is closed: the unexported methods cannot be implemented elsewhere.
type Order interface {
	ID() string
	Side() Side
	Type() OrderType
	// Size is the remaining quantity.
	Size() decimal.Decimal
	InitialSize() decimal.Decimal
	STPFGroup() string
	Meta() map[string]string
	IsUntouched() bool
	IsFullyExecuted() bool
	SuppressAccept() bool
	SuppressPlace() bool
	// DiminishSize panics with ErrDiminishExceeded when qty exceeds the remaining size.
	DiminishSize(qty decimal.Decimal)

	base() *orderBase
	process(state *BookState) ErrorCode
	importInto(state *BookState) error
	cancel(state *BookState, code ErrorCode) bool
}

// OrderOptions are the fields shared by every order type.
type OrderOptions struct {
	// ID must be unique within the book. Empty means generated.
	ID   string
	Side Side
	Size decimal.Decimal
	// InitialSize is only set for an order that was persisted after partial
	// execution. Zero means Size.
	InitialSize decimal.Decimal
	// STPFGroup enables self-trade prevention: orders of the same group never match.
	STPFGroup      string
	SuppressAccept bool
	Meta           map[string]string
}

type orderBase struct {
	id             string
	side           Side
	orderType      OrderType
	size           decimal.Decimal
	initialSize    decimal.Decimal
	stpfGroup      string
	suppressAccept bool
	suppressPlace  bool
	stpfViolated   bool
	meta           map[string]string
}

func newOrderBase(opts OrderOptions, orderType OrderType) orderBase {
	if !opts.Side.IsValid() {
		panic(ErrUnknownSide)
	}
	if opts.Size.IsNegative() {
		panic(ErrNegativeSize)
	}

	id := opts.ID
	if id == "" {
		id = idGenerator.NewID()
	}

	initial := opts.InitialSize
	if initial.IsZero() {
		initial = opts.Size
	}

	meta := opts.Meta
	if meta == nil {
		meta = map[string]string{}
	}

	return orderBase{
		id:             id,
		side:           opts.Side,
		orderType:      orderType,
		size:           opts.Size,
		initialSize:    initial,
		stpfGroup:      opts.STPFGroup,
		suppressAccept: opts.SuppressAccept,
		meta:           meta,
	}
}

// derive builds the base of the order a stop converts into. The new order
// inherits identity and remaining size, and never announces its acceptance.
func (b *orderBase) derive(orderType OrderType) orderBase {
	return orderBase{
		id:             b.id,
		side:           b.side,
		orderType:      orderType,
		size:           b.size,
		initialSize:    b.size,
		stpfGroup:      b.stpfGroup,
		suppressAccept: true,
		meta:           b.meta,
	}
}

func (b *orderBase) base() *orderBase { return b }

func (b *orderBase) ID() string                   { return b.id }
func (b *orderBase) Side() Side                   { return b.side }
func (b *orderBase) Type() OrderType              { return b.orderType }
func (b *orderBase) Size() decimal.Decimal        { return b.size }
func (b *orderBase) InitialSize() decimal.Decimal { return b.initialSize }
func (b *orderBase) STPFGroup() string            { return b.stpfGroup }
func (b *orderBase) Meta() map[string]string      { return b.meta }
func (b *orderBase) SuppressAccept() bool         { return b.suppressAccept }
func (b *orderBase) SuppressPlace() bool          { return b.suppressPlace }

func (b *orderBase) IsUntouched() bool {
	return b.size.Equal(b.initialSize)
}

func (b *orderBase) IsFullyExecuted() bool {
	return !b.size.IsPositive()
}

func (b *orderBase) DiminishSize(qty decimal.Decimal) {
	if qty.GreaterThan(b.size) {
		panic(ErrDiminishExceeded)
	}
	b.size = b.size.Sub(qty)
}

// collidesWith reports a self-trade prevention hit against other.
func (b *orderBase) collidesWith(other Order) bool {
	return b.stpfGroup != "" && b.stpfGroup == other.STPFGroup()
}

// inject runs the full pipeline for o and emits the final accept or reject.
func inject(state *BookState, o Order) *ProcessingResult {
	var code ErrorCode
	if _, ok := state.FindOrder(o.ID()); ok {
		code = ErrorCodeIDConflict
	} else {
		code = o.process(state)
	}

	if code != ErrorCodeNone {
		state.notifyReject(o, code)
		return &ProcessingResult{OrderID: o.ID(), Code: code}
	}

	markAsAccepted(state, o)
	return &ProcessingResult{OrderID: o.ID(), Accepted: true}
}

// markAsAccepted emits accept at most once per order.
func markAsAccepted(state *BookState, o Order) {
	state.notifyAccept(o)
	o.base().suppressAccept = true
}

// topLimitOrder returns the head of a limit container.
func topLimitOrder(c *BinContainer) (*LimitOrder, bool) {
	top, ok := c.TopOrder()
	if !ok {
		return nil, false
	}
	lo, ok := top.(*LimitOrder)
	if !ok {
		panic(ErrUnexpectedOrder)
	}
	return lo, true
}
