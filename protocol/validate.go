package protocol

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingPrice     = errors.New("protocol: price is required for this order type")
	ErrMissingStopPrice = errors.New("protocol: stop_price is required for this order type")
	ErrUnexpectedField  = errors.New("protocol: field is not allowed for this order type")
)

var validate = validator.New()

// Validate checks the struct tags and the per-type field requirements.
func (cmd *PlaceOrderCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return err
	}

	if cmd.OrderType.IsStop() && cmd.StopPrice == "" {
		return ErrMissingStopPrice
	}

	switch cmd.OrderType {
	case OrderTypeLimit:
		if cmd.Price == "" {
			return ErrMissingPrice
		}
		if cmd.StopPrice != "" || cmd.AvailableVolume != "" {
			return fmt.Errorf("%w: %s", ErrUnexpectedField, cmd.OrderType)
		}
	case OrderTypeMarket:
		if cmd.Price != "" || cmd.StopPrice != "" {
			return fmt.Errorf("%w: %s", ErrUnexpectedField, cmd.OrderType)
		}
	case OrderTypeStopLimit:
		if cmd.Price == "" {
			return ErrMissingPrice
		}
		if cmd.AvailableVolume != "" {
			return fmt.Errorf("%w: %s", ErrUnexpectedField, cmd.OrderType)
		}
	case OrderTypeStopMarket:
		if cmd.Price != "" {
			return fmt.Errorf("%w: %s", ErrUnexpectedField, cmd.OrderType)
		}
	}

	if cmd.VolumeQtyPrecision != "" && cmd.AvailableVolume == "" {
		return fmt.Errorf("%w: volume_qty_precision without available_volume", ErrUnexpectedField)
	}

	return nil
}

// Validate checks the struct tags.
func (cmd *CancelOrderCommand) Validate() error {
	return validate.Struct(cmd)
}

// Validate checks the struct tags.
func (cmd *CreateMarketCommand) Validate() error {
	return validate.Struct(cmd)
}
