package match

import (
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

const (
	EngineVersion = "v1.0.0"

	// SnapshotSchemaVersion changes whenever BookSnapshot loses backward compatibility.
	SnapshotSchemaVersion = 1
)

// OrderState is the serializable state of a resting or pending order.
type OrderState struct {
	ID          string            `json:"id"`
	Type        OrderType         `json:"type"`
	Side        Side              `json:"side"`
	Price       decimal.Decimal   `json:"price"`      // Limit price; zero for stop market orders
	StopPrice   decimal.Decimal   `json:"stop_price"` // Zero for limit orders
	Size        decimal.Decimal   `json:"size"`       // Remaining size
	InitialSize decimal.Decimal   `json:"initial_size"`
	STPFGroup   string            `json:"stpf_group,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
	// Volume limit carried by a stop market order.
	AvailableVolume decimal.NullDecimal `json:"available_volume"`
	QtyPrecision    decimal.Decimal     `json:"qty_precision"`
}

// BookSnapshot contains the full state of a single OrderBook. Order lists are
// in priority order, so restoring them one by one keeps time priority.
type BookSnapshot struct {
	SchemaVersion       int                 `json:"schema_version"`
	MarketID            string              `json:"market_id"`
	SeqID               uint64              `json:"seq_id"`   // Last BookLog sequence ID, if the book publishes a log
	TradeID             uint64              `json:"trade_id"` // Current trade sequence ID
	Bid                 decimal.NullDecimal `json:"bid"`
	Ask                 decimal.NullDecimal `json:"ask"`
	MarketPrice         decimal.NullDecimal `json:"market_price"`
	PreviousMarketPrice decimal.NullDecimal `json:"previous_market_price"`
	Bids                []*OrderState       `json:"bids"`
	Asks                []*OrderState       `json:"asks"`
	StopBids            []*OrderState       `json:"stop_bids"`
	StopAsks            []*OrderState       `json:"stop_asks"`
}

// SnapshotMetadata describes a set of book snapshots taken together.
type SnapshotMetadata struct {
	Timestamp     int64  `json:"timestamp"` // Unix Nano
	EngineVersion string `json:"engine_version"`
	MarketCount   int    `json:"market_count"`
}

func newOrderState(o Order) *OrderState {
	s := &OrderState{
		ID:          o.ID(),
		Type:        o.Type(),
		Side:        o.Side(),
		Size:        o.Size(),
		InitialSize: o.InitialSize(),
		STPFGroup:   o.STPFGroup(),
		Meta:        maps.Clone(o.Meta()),
	}

	switch v := o.(type) {
	case *LimitOrder:
		s.Price = v.Price()
	case *StopLimitOrder:
		s.Price = v.LimitPrice()
		s.StopPrice = v.StopPrice()
	case *StopMarketOrder:
		s.StopPrice = v.StopPrice()
		if v.VolumeLimit() != nil {
			s.AvailableVolume = decimal.NewNullDecimal(v.VolumeLimit().Available)
			s.QtyPrecision = v.VolumeLimit().QtyPrecision
		}
	}

	return s
}

// Order rebuilds the order described by s. Accept events stay suppressed.
func (s *OrderState) Order() (Order, error) {
	opts := OrderOptions{
		ID:             s.ID,
		Side:           s.Side,
		Size:           s.Size,
		InitialSize:    s.InitialSize,
		STPFGroup:      s.STPFGroup,
		SuppressAccept: true,
		Meta:           maps.Clone(s.Meta),
	}

	if !s.Side.IsValid() || !s.Size.IsPositive() {
		return nil, fmt.Errorf("%w: order %s", ErrInvalidParam, s.ID)
	}

	switch s.Type {
	case Limit:
		return NewLimitOrder(opts, s.Price), nil
	case StopLimit:
		return NewStopLimitOrder(opts, s.StopPrice, s.Price), nil
	case StopMarket:
		var limit *VolumeLimit
		if s.AvailableVolume.Valid {
			limit = &VolumeLimit{Available: s.AvailableVolume.Decimal, QtyPrecision: s.QtyPrecision}
		}
		return NewStopMarketOrder(opts, s.StopPrice, limit), nil
	}

	return nil, fmt.Errorf("%w: order %s has type %q", ErrNotImportable, s.ID, s.Type)
}

func containerStates(c *BinContainer) []*OrderState {
	states := make([]*OrderState, 0, c.OrderCount())
	c.Each(func(_ decimal.Decimal, o Order) bool {
		states = append(states, newOrderState(o))
		return true
	})
	return states
}

// Snapshot captures the book state in memory.
func (book *OrderBook) Snapshot() *BookSnapshot {
	s := book.state
	return &BookSnapshot{
		SchemaVersion:       SnapshotSchemaVersion,
		MarketID:            s.marketID,
		TradeID:             s.tradeSeq,
		Bid:                 s.bid,
		Ask:                 s.ask,
		MarketPrice:         s.marketPrice,
		PreviousMarketPrice: s.previousMarketPrice,
		Bids:                containerStates(limitResolver.resolve(s, Buy)),
		Asks:                containerStates(limitResolver.resolve(s, Sell)),
		StopBids:            containerStates(stopResolver.resolve(s, Buy)),
		StopAsks:            containerStates(stopResolver.resolve(s, Sell)),
	}
}

// Restore imports every order of snap and then its book prices. It stops at
// the first order that cannot be imported.
func (book *OrderBook) Restore(snap *BookSnapshot) error {
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return fmt.Errorf("%w: snapshot schema version %d", ErrInvalidParam, snap.SchemaVersion)
	}

	for _, list := range [][]*OrderState{snap.Bids, snap.Asks, snap.StopBids, snap.StopAsks} {
		for _, st := range list {
			o, err := st.Order()
			if err != nil {
				return err
			}
			if err := book.ImportOrder(o); err != nil {
				return fmt.Errorf("import order %s: %w", st.ID, err)
			}
		}
	}

	book.ImportBookData(BookData{
		Bid:                 snap.Bid,
		Ask:                 snap.Ask,
		MarketPrice:         snap.MarketPrice,
		PreviousMarketPrice: snap.PreviousMarketPrice,
	})

	if snap.TradeID > book.state.tradeSeq {
		book.state.tradeSeq = snap.TradeID
	}

	return nil
}
