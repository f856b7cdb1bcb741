package match

import (
	"github.com/shopspring/decimal"
)

// makeTrade executes aggressor against the resting limit order at the resting
// price. It returns nil without touching the book when a volume cap leaves
// nothing to trade.
func makeTrade(state *BookState, aggressor Order, resting *LimitOrder) *Trade {
	price := resting.Price()

	size, capped := tradeSize(state, aggressor, resting)
	if !size.IsPositive() {
		return nil
	}

	trade := &Trade{
		ID:            state.nextTradeID(),
		Order:         aggressor,
		OppositeOrder: resting,
		Price:         price,
		Size:          size,
	}

	restingFull := size.GreaterThanOrEqual(resting.Size())

	state.notifyFill(&OrderFill{
		TradeID:       trade.ID,
		Order:         aggressor,
		OppositeOrder: resting,
		Price:         price,
		Size:          size,
		IsFull:        size.GreaterThanOrEqual(aggressor.Size()),
	})
	state.notifyFill(&OrderFill{
		TradeID:       trade.ID,
		Order:         resting,
		OppositeOrder: aggressor,
		Price:         price,
		Size:          size,
		IsFull:        restingFull,
		IsMaker:       true,
	})
	state.notifyTrade(trade)

	resting.DiminishSize(size)
	aggressor.DiminishSize(size)

	if mo, ok := aggressor.(*MarketOrder); ok && mo.HasVolumeLimit() {
		if capped {
			mo.DiminishAvailableVolume(mo.AvailableVolume())
		} else {
			mo.DiminishAvailableVolume(size.Mul(price))
		}
	}

	if restingFull {
		resting.removeFromBook(state)
	}

	state.shiftMarketPrice(price)
	traverseStopBook(state, aggressor.Side())

	return trade
}

// tradeSize returns the quantity to trade and whether the aggressor's volume
// cap, rather than either remaining size, decided it.
func tradeSize(state *BookState, aggressor Order, resting *LimitOrder) (decimal.Decimal, bool) {
	size := decimal.Min(aggressor.Size(), resting.Size())

	mo, ok := aggressor.(*MarketOrder)
	if !ok || !mo.HasVolumeLimit() {
		return size, false
	}

	volumeCap := affordableSize(mo.AvailableVolume(), resting.Price(), mo.QtyPrecision(), state.cfg.VolumeDivisionScale)
	if volumeCap.LessThan(size) {
		return volumeCap, true
	}
	return size, false
}

// affordableSize is the largest quantity whose cost at price does not exceed
// volume, floored to a multiple of precision when one is set.
func affordableSize(volume, price, precision decimal.Decimal, scale int32) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}

	if precision.IsPositive() {
		units, _ := volume.QuoRem(price.Mul(precision), 0)
		return units.Mul(precision)
	}

	q, _ := volume.QuoRem(price, scale)
	return q
}

// traverseStopBook converts the stops on side that the latest trade price has
// moved past. Nothing happens on the first trade of the book or when the price
// did not change.
func traverseStopBook(state *BookState, side Side) {
	if !state.previousMarketPrice.Valid {
		return
	}
	if state.marketPrice.Decimal.Equal(state.previousMarketPrice.Decimal) {
		return
	}

	stops := stopResolver.resolve(state, side)

	for {
		top, ok := stops.TopOrder()
		if !ok {
			return
		}

		stop, ok := top.(StopOrder)
		if !ok {
			panic(ErrUnexpectedOrder)
		}

		market := state.marketPrice.Decimal
		var triggered bool
		switch side {
		case Buy:
			triggered = market.GreaterThan(stop.StopPrice())
		case Sell:
			triggered = market.LessThan(stop.StopPrice())
		}

		if !triggered {
			return
		}

		stop.convert(state)
	}
}
