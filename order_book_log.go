package match

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// BookLog is the flat record of one book event.
// SequenceID increases by one for every event of a book and is used for
// ordering, deduplication and rebuild synchronization downstream.
// Price is the limit price for limit orders, the stop price for stop orders
// and the trade price for fill and trade events. Size is the remaining size,
// except for fill and trade events where it is the traded size.
type BookLog struct {
	SequenceID      uint64          `json:"seq_id"`
	TradeID         uint64          `json:"trade_id,omitempty"` // Only set for fill and trade events
	Type            LogType         `json:"type"`
	MarketID        string          `json:"market_id"`
	OrderID         string          `json:"order_id"`
	OrderType       OrderType       `json:"order_type,omitempty"`
	Side            Side            `json:"side"`
	Price           decimal.Decimal `json:"price"`
	Size            decimal.Decimal `json:"size"`
	Amount          decimal.Decimal `json:"amount,omitempty"` // Price * Size, only set for trade events
	OppositeOrderID string          `json:"opposite_order_id,omitempty"`
	IsFull          bool            `json:"is_full,omitempty"`
	IsMaker         bool            `json:"is_maker,omitempty"`
	Reason          ErrorCode       `json:"reason,omitempty"` // Only set for reject and cancel events
	CreatedAt       time.Time       `json:"created_at"`
}

var bookLogPool = sync.Pool{
	New: func() any {
		return new(BookLog)
	},
}

func acquireBookLog() *BookLog {
	return bookLogPool.Get().(*BookLog)
}

func releaseBookLog(log *BookLog) {
	*log = BookLog{}
	bookLogPool.Put(log)
}

// orderPrice is the price an order is filed under.
func orderPrice(o Order) decimal.Decimal {
	switch v := o.(type) {
	case *LimitOrder:
		return v.Price()
	case StopOrder:
		return v.StopPrice()
	}
	return decimal.Zero
}

func newOrderLog(seqID uint64, logType LogType, marketID string, order Order) *BookLog {
	log := acquireBookLog()
	log.SequenceID = seqID
	log.Type = logType
	log.MarketID = marketID
	log.OrderID = order.ID()
	log.OrderType = order.Type()
	log.Side = order.Side()
	log.Price = orderPrice(order)
	log.Size = order.Size()
	log.CreatedAt = time.Now().UTC()
	return log
}

func NewAcceptLog(seqID uint64, marketID string, order Order) *BookLog {
	return newOrderLog(seqID, LogTypeAccept, marketID, order)
}

func NewRejectLog(seqID uint64, marketID string, order Order, reason ErrorCode) *BookLog {
	log := newOrderLog(seqID, LogTypeReject, marketID, order)
	log.Reason = reason
	return log
}

func NewCancelLog(seqID uint64, marketID string, order Order, reason ErrorCode) *BookLog {
	log := newOrderLog(seqID, LogTypeCancel, marketID, order)
	log.Reason = reason
	return log
}

func NewPlaceLog(seqID uint64, marketID string, order Order) *BookLog {
	return newOrderLog(seqID, LogTypePlace, marketID, order)
}

func NewDisplaceLog(seqID uint64, marketID string, order Order) *BookLog {
	return newOrderLog(seqID, LogTypeDisplace, marketID, order)
}

func NewFillLog(seqID uint64, marketID string, fill *OrderFill) *BookLog {
	log := acquireBookLog()
	log.SequenceID = seqID
	log.TradeID = fill.TradeID
	log.Type = LogTypeFill
	log.MarketID = marketID
	log.OrderID = fill.Order.ID()
	log.OrderType = fill.Order.Type()
	log.Side = fill.Order.Side()
	log.Price = fill.Price
	log.Size = fill.Size
	log.OppositeOrderID = fill.OppositeOrder.ID()
	log.IsFull = fill.IsFull
	log.IsMaker = fill.IsMaker
	log.CreatedAt = time.Now().UTC()
	return log
}

func NewTradeLog(seqID uint64, marketID string, trade *Trade) *BookLog {
	log := acquireBookLog()
	log.SequenceID = seqID
	log.TradeID = trade.ID
	log.Type = LogTypeTrade
	log.MarketID = marketID
	log.OrderID = trade.Order.ID()
	log.OrderType = trade.Order.Type()
	log.Side = trade.Order.Side()
	log.Price = trade.Price
	log.Size = trade.Size
	log.Amount = trade.Price.Mul(trade.Size)
	log.OppositeOrderID = trade.OppositeOrder.ID()
	log.CreatedAt = time.Now().UTC()
	return log
}

// LogNotifier turns book events into BookLog records and hands them to a
// PublishLog. Records are recycled once Publish returns.
type LogNotifier struct {
	marketID  string
	seqID     uint64
	publisher PublishLog
}

func NewLogNotifier(marketID string, publisher PublishLog) *LogNotifier {
	return &LogNotifier{
		marketID:  marketID,
		publisher: publisher,
	}
}

// SequenceID returns the sequence id of the last published record.
func (n *LogNotifier) SequenceID() uint64 {
	return n.seqID
}

// SetSequenceID resumes numbering after a restore.
func (n *LogNotifier) SetSequenceID(seqID uint64) {
	n.seqID = seqID
}

func (n *LogNotifier) next() uint64 {
	n.seqID++
	return n.seqID
}

func (n *LogNotifier) publish(log *BookLog) {
	n.publisher.Publish(log)
	releaseBookLog(log)
}

func (n *LogNotifier) OnAccept(order Order) {
	n.publish(NewAcceptLog(n.next(), n.marketID, order))
}

func (n *LogNotifier) OnReject(order Order, code ErrorCode) {
	n.publish(NewRejectLog(n.next(), n.marketID, order, code))
}

func (n *LogNotifier) OnCancel(order Order, code ErrorCode) {
	n.publish(NewCancelLog(n.next(), n.marketID, order, code))
}

func (n *LogNotifier) OnPlace(order Order) {
	n.publish(NewPlaceLog(n.next(), n.marketID, order))
}

func (n *LogNotifier) OnDisplace(order Order) {
	n.publish(NewDisplaceLog(n.next(), n.marketID, order))
}

func (n *LogNotifier) OnFill(fill *OrderFill) {
	n.publish(NewFillLog(n.next(), n.marketID, fill))
}

func (n *LogNotifier) OnTrade(trade *Trade) {
	n.publish(NewTradeLog(n.next(), n.marketID, trade))
}
