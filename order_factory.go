package match

import (
	"fmt"

	"github.com/0x5487/matching-kernel/protocol"
	"github.com/shopspring/decimal"
)

// NewOrderFromCommand validates cmd and builds the matching order variant.
func NewOrderFromCommand(cmd *protocol.PlaceOrderCommand) (Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	size, err := parseDecimal("size", cmd.Size)
	if err != nil {
		return nil, err
	}
	initialSize, err := parseDecimal("initial_size", cmd.InitialSize)
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal("price", cmd.Price)
	if err != nil {
		return nil, err
	}
	stopPrice, err := parseDecimal("stop_price", cmd.StopPrice)
	if err != nil {
		return nil, err
	}

	if size.IsNegative() || initialSize.IsNegative() {
		return nil, fmt.Errorf("%w: negative size", ErrInvalidParam)
	}

	var limit *VolumeLimit
	if cmd.AvailableVolume != "" {
		available, err := parseDecimal("available_volume", cmd.AvailableVolume)
		if err != nil {
			return nil, err
		}
		precision, err := parseDecimal("volume_qty_precision", cmd.VolumeQtyPrecision)
		if err != nil {
			return nil, err
		}
		limit = &VolumeLimit{Available: available, QtyPrecision: precision}
	}

	opts := OrderOptions{
		ID:          cmd.OrderID,
		Side:        cmd.Side,
		Size:        size,
		InitialSize: initialSize,
		STPFGroup:   cmd.STPFGroup,
		Meta:        cmd.Meta,
	}

	switch cmd.OrderType {
	case Limit:
		return NewLimitOrder(opts, price), nil
	case Market:
		return NewMarketOrder(opts, limit), nil
	case StopLimit:
		return NewStopLimitOrder(opts, stopPrice, price), nil
	case StopMarket:
		return NewStopMarketOrder(opts, stopPrice, limit), nil
	}

	return nil, fmt.Errorf("%w: order type %q", ErrInvalidParam, cmd.OrderType)
}

// parseDecimal treats an empty string as zero.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidParam, field, err)
	}
	return d, nil
}
