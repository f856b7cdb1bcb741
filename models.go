package match

import (
	"github.com/0x5487/matching-kernel/protocol"
	"github.com/shopspring/decimal"
)

type Side = protocol.Side

const (
	Buy  Side = protocol.SideBuy
	Sell Side = protocol.SideSell
)

type OrderType = protocol.OrderType

const (
	Limit      OrderType = protocol.OrderTypeLimit
	Market     OrderType = protocol.OrderTypeMarket
	StopLimit  OrderType = protocol.OrderTypeStopLimit
	StopMarket OrderType = protocol.OrderTypeStopMarket
)

type ErrorCode = protocol.ErrorCode

const (
	ErrorCodeNone                = protocol.ErrorCodeNone
	ErrorCodeIDConflict          = protocol.ErrorCodeIDConflict
	ErrorCodeNoLiquidity         = protocol.ErrorCodeNoLiquidity
	ErrorCodeNoTrades            = protocol.ErrorCodeNoTrades
	ErrorCodeStopPriceTooHigh    = protocol.ErrorCodeStopPriceTooHigh
	ErrorCodeStopPriceTooLow     = protocol.ErrorCodeStopPriceTooLow
	ErrorCodeWashTradeDenied     = protocol.ErrorCodeWashTradeDenied
	ErrorCodeVolumeLimitExceeded = protocol.ErrorCodeVolumeLimitExceeded
	ErrorCodeCustom              = protocol.ErrorCodeCustom
)

type LogType = protocol.LogType

const (
	LogTypeAccept   = protocol.LogTypeAccept
	LogTypeReject   = protocol.LogTypeReject
	LogTypeCancel   = protocol.LogTypeCancel
	LogTypePlace    = protocol.LogTypePlace
	LogTypeDisplace = protocol.LogTypeDisplace
	LogTypeFill     = protocol.LogTypeFill
	LogTypeTrade    = protocol.LogTypeTrade
)

// Trade is produced for every matched pair. Order is the aggressing order,
// OppositeOrder the resting one; Price is always the resting order's price.
type Trade struct {
	ID            uint64
	Order         Order
	OppositeOrder Order
	Price         decimal.Decimal
	Size          decimal.Decimal
}

// OrderFill describes one side of a trade. Two fills are emitted per trade,
// the aggressor's first.
type OrderFill struct {
	TradeID       uint64
	Order         Order
	OppositeOrder Order
	Price         decimal.Decimal
	Size          decimal.Decimal
	IsFull        bool // the fill exhausts Order's remaining size
	IsMaker       bool // Order is the resting side
}

// ProcessingResult is returned by AddOrder.
type ProcessingResult struct {
	OrderID  string
	Accepted bool
	Code     ErrorCode // set only when Accepted is false
}

// BookData carries book prices for ImportBookData. Invalid fields are left untouched.
type BookData struct {
	Bid                 decimal.NullDecimal `json:"bid"`
	Ask                 decimal.NullDecimal `json:"ask"`
	MarketPrice         decimal.NullDecimal `json:"market_price"`
	PreviousMarketPrice decimal.NullDecimal `json:"previous_market_price"`
}

// DepthItem is one aggregated price level.
type DepthItem struct {
	ID    uint32
	Price decimal.Decimal
	Size  decimal.Decimal
	Count int64
}

// Depth is a view of the resting limit liquidity, best price first.
type Depth struct {
	Asks []*DepthItem `json:"asks"`
	Bids []*DepthItem `json:"bids"`
}

// BookStats contains statistics about the order book containers.
type BookStats struct {
	AskDepthCount  int64
	AskOrderCount  int64
	BidDepthCount  int64
	BidOrderCount  int64
	StopOrderCount int64
}

// DepthChange represents a change in the order book depth.
type DepthChange struct {
	Side     Side
	Price    decimal.Decimal
	SizeDiff decimal.Decimal
}
