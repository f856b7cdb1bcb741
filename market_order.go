package match

import (
	"github.com/shopspring/decimal"
)

// VolumeLimit caps the notional a market order may spend.
type VolumeLimit struct {
	Available decimal.Decimal
	// QtyPrecision, when positive, floors every traded quantity to a multiple of it.
	QtyPrecision decimal.Decimal
}

// MarketOrder takes whatever liquidity is available and never rests.
type MarketOrder struct {
	orderBase
	hasVolumeLimit  bool
	availableVolume decimal.Decimal
	qtyPrecision    decimal.Decimal
}

// NewMarketOrder creates a market order. A nil limit means no volume cap.
func NewMarketOrder(opts OrderOptions, limit *VolumeLimit) *MarketOrder {
	o := &MarketOrder{
		orderBase: newOrderBase(opts, Market),
	}
	o.setVolumeLimit(limit)
	return o
}

func (o *MarketOrder) setVolumeLimit(limit *VolumeLimit) {
	if limit == nil {
		return
	}
	o.hasVolumeLimit = true
	o.availableVolume = limit.Available
	if limit.QtyPrecision.IsPositive() {
		o.qtyPrecision = limit.QtyPrecision
	}
}

func (o *MarketOrder) HasVolumeLimit() bool {
	return o.hasVolumeLimit
}

func (o *MarketOrder) AvailableVolume() decimal.Decimal {
	return o.availableVolume
}

func (o *MarketOrder) QtyPrecision() decimal.Decimal {
	return o.qtyPrecision
}

// volumeExhausted reports a volume cap that has been spent entirely.
func (o *MarketOrder) volumeExhausted() bool {
	return o.hasVolumeLimit && o.availableVolume.IsZero()
}

// DiminishAvailableVolume spends v from the volume cap.
func (o *MarketOrder) DiminishAvailableVolume(v decimal.Decimal) {
	if !o.hasVolumeLimit {
		panic(ErrNoVolumeLimit)
	}
	if o.availableVolume.IsZero() {
		panic(ErrVolumeLimitExhausted)
	}
	if v.GreaterThan(o.availableVolume) {
		panic(ErrDiminishExceeded)
	}
	o.availableVolume = o.availableVolume.Sub(v)
}

func (o *MarketOrder) process(state *BookState) ErrorCode {
	opposite := limitResolver.resolve(state, oppositeSide(o.side))

	if _, ok := opposite.TopPrice(); !ok {
		return ErrorCodeNoLiquidity
	}

	for !o.IsFullyExecuted() {
		resting, ok := topLimitOrder(opposite)
		if !ok {
			break
		}

		if o.collidesWith(resting) {
			o.stpfViolated = true
			break
		}

		markAsAccepted(state, o)
		trade := makeTrade(state, o, resting)

		if trade == nil || o.volumeExhausted() {
			if !o.IsFullyExecuted() {
				o.cancel(state, ErrorCodeVolumeLimitExceeded)
			}
			return ErrorCodeNone
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
		o.cancel(state, ErrorCodeNoLiquidity)
	}

	return ErrorCodeNone
}

func (o *MarketOrder) importInto(*BookState) error {
	return ErrNotImportable
}

// cancel only notifies: a market order is never registered.
func (o *MarketOrder) cancel(state *BookState, code ErrorCode) bool {
	state.notifyCancel(o, code)
	return false
}
