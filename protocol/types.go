package protocol

// Side represents the order side (Buy/Sell).
type Side int8

const (
	SideBuy  Side = 1
	SideSell Side = 2
)

// String returns the lower-case name of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	}
	return "unknown"
}

// IsValid reports whether s is one of the two known sides.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType represents the type of order.
type OrderType string

const (
	OrderTypeLimit      OrderType = "limit"
	OrderTypeMarket     OrderType = "market"
	OrderTypeStopLimit  OrderType = "stop_limit"  // Becomes a limit order once triggered
	OrderTypeStopMarket OrderType = "stop_market" // Becomes a market order once triggered
)

// IsStop reports whether the order type rests in a stop container.
func (t OrderType) IsStop() bool {
	return t == OrderTypeStopLimit || t == OrderTypeStopMarket
}

// LogType represents the type of book event.
type LogType string

const (
	LogTypeAccept   LogType = "accept"
	LogTypeReject   LogType = "reject"
	LogTypeCancel   LogType = "cancel"
	LogTypePlace    LogType = "place"
	LogTypeDisplace LogType = "displace"
	LogTypeFill     LogType = "fill"
	LogTypeTrade    LogType = "trade"
)

// ErrorCode is the reason attached to a rejection or a cancellation.
// Rejected orders never reach the book; cancelled orders were accepted first
// and keep every fill they produced.
type ErrorCode string

const (
	ErrorCodeNone                ErrorCode = ""
	ErrorCodeIDConflict          ErrorCode = "id_conflict"           // Reject only
	ErrorCodeNoLiquidity         ErrorCode = "no_liquidity"          // Market: reject on empty book, cancel when exhausted
	ErrorCodeNoTrades            ErrorCode = "no_trades"             // Stop: no market price yet
	ErrorCodeStopPriceTooHigh    ErrorCode = "stop_price_too_high"   // Sell stop at or above market
	ErrorCodeStopPriceTooLow     ErrorCode = "stop_price_too_low"    // Buy stop at or below market
	ErrorCodeWashTradeDenied     ErrorCode = "wash_trade_denied"     // STPF collision
	ErrorCodeVolumeLimitExceeded ErrorCode = "volume_limit_exceeded" // Cancel only
	// ErrorCodeCustom is never emitted by the book. It is kept so that
	// consumers of the log stream can carry their own rejection reasons
	// in the same field.
	ErrorCodeCustom              ErrorCode = "custom"
)
