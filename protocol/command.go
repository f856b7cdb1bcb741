package protocol

// CommandType defines the type of the command (using uint8 for memory alignment and performance)
type CommandType uint8

// Command Type Numbering Strategy:
// - 0-50:  OrderBook Management Commands (internal, low-frequency admin operations)
// - 51+:   Trading Commands (external, high-frequency hot path)
const (
	CmdUnknown      CommandType = 0
	CmdCreateMarket CommandType = 1

	CmdPlaceOrder  CommandType = 51
	CmdCancelOrder CommandType = 52
)

// Command is the standard carrier for commands entering the Matching Engine.
type Command struct {
	// Version is the protocol version for backward compatibility.
	Version uint8 `json:"version"`

	// MarketID is the target market for this command (Routing Header).
	MarketID string `json:"market_id"`

	// SeqID is used for global ordering and deduplication.
	SeqID uint64 `json:"seq_id"`

	// Type identifies the payload type for fast routing.
	Type CommandType `json:"type"`

	// Payload contains the serialized business data (e.g., JSON bytes of PlaceOrderCommand).
	Payload []byte `json:"payload"`

	// Metadata stores non-business context (e.g., Tracing ID, Source IP).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PlaceOrderCommand is the payload for placing a new order.
// Decimal fields are strings to prevent precision loss in JSON.
//
// Price is the limit price for limit and stop_limit orders.
// StopPrice is the trigger price for stop_limit and stop_market orders.
// AvailableVolume enables volume limiting for market and stop_market orders,
// VolumeQtyPrecision optionally floors volume-limited trade quantities.
type PlaceOrderCommand struct {
	OrderID            string            `json:"order_id" validate:"max=128"`
	Side               Side              `json:"side" validate:"oneof=1 2"`
	OrderType          OrderType         `json:"order_type" validate:"required,oneof=limit market stop_limit stop_market"`
	Price              string            `json:"price,omitempty" validate:"omitempty,numeric"`
	StopPrice          string            `json:"stop_price,omitempty" validate:"omitempty,numeric"`
	Size               string            `json:"size" validate:"required,numeric"`
	InitialSize        string            `json:"initial_size,omitempty" validate:"omitempty,numeric"`
	AvailableVolume    string            `json:"available_volume,omitempty" validate:"omitempty,numeric"`
	VolumeQtyPrecision string            `json:"volume_qty_precision,omitempty" validate:"omitempty,numeric"`
	STPFGroup          string            `json:"stpf_group,omitempty" validate:"max=128"`
	Meta               map[string]string `json:"meta,omitempty"`
	Timestamp          int64             `json:"timestamp"`
}

// CancelOrderCommand is the payload for cancelling an existing order.
type CancelOrderCommand struct {
	OrderID   string `json:"order_id" validate:"required"`
	Timestamp int64  `json:"timestamp"`
}

// CreateMarketCommand is the payload for creating a new market/order book.
type CreateMarketCommand struct {
	UserID   string `json:"user_id"`                      // Operator ID for audit trail
	MarketID string `json:"market_id" validate:"required"` // Unique market identifier
}
