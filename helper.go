package match

// CalculateDepthChange calculates the change a book log makes to the resting
// limit liquidity. It returns a zero DepthChange for events that leave the
// depth untouched: stop orders, market orders, accepts, rejects and trades.
// Note: a cancel never changes depth by itself; the displace emitted before it
// already removed the order.
func CalculateDepthChange(log *BookLog) DepthChange {
	switch log.Type {
	case LogTypePlace:
		if log.OrderType != Limit {
			return DepthChange{}
		}
		return DepthChange{
			Side:     log.Side,
			Price:    log.Price,
			SizeDiff: log.Size,
		}
	case LogTypeDisplace:
		if log.OrderType != Limit {
			return DepthChange{}
		}
		// A fully filled order is displaced with zero size; its fills already
		// removed the liquidity.
		return DepthChange{
			Side:     log.Side,
			Price:    log.Price,
			SizeDiff: log.Size.Neg(),
		}
	case LogTypeFill:
		// Only the maker's fill consumes resting liquidity.
		if !log.IsMaker {
			return DepthChange{}
		}
		return DepthChange{
			Side:     log.Side,
			Price:    log.Price,
			SizeDiff: log.Size.Neg(),
		}
	}

	return DepthChange{}
}
