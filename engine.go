package match

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/0x5487/matching-kernel/protocol"
)

// MatchingEngine manages one order book per market. Every command runs
// synchronously under the engine lock, so books never see concurrent calls.
type MatchingEngine struct {
	mu         sync.Mutex
	cfg        *Config
	orderbooks map[string]*engineBook
	publisher  PublishLog
	serializer protocol.Serializer
}

type engineBook struct {
	book *OrderBook
	log  *LogNotifier
}

// NewMatchingEngine creates a new matching engine. Every book publishes its
// log stream to publisher.
func NewMatchingEngine(publisher PublishLog) *MatchingEngine {
	return NewMatchingEngineWithConfig(publisher, DefaultConfig())
}

func NewMatchingEngineWithConfig(publisher PublishLog, cfg *Config) *MatchingEngine {
	if publisher == nil {
		publisher = NewDiscardPublishLog()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &MatchingEngine{
		cfg:        cfg,
		orderbooks: make(map[string]*engineBook),
		publisher:  publisher,
		serializer: &protocol.DefaultJSONSerializer{},
	}
}

// ExecuteCommand decodes cmd and routes it by type and MarketID.
// The returned value is *ProcessingResult for CmdPlaceOrder, bool for
// CmdCancelOrder and nil for CmdCreateMarket.
func (engine *MatchingEngine) ExecuteCommand(cmd *protocol.Command) (any, error) {
	switch cmd.Type {
	case protocol.CmdCreateMarket:
		var payload protocol.CreateMarketCommand
		if err := engine.decode(cmd, &payload); err != nil {
			return nil, err
		}
		if err := payload.Validate(); err != nil {
			logger.Warn("invalid create market command", "market_id", cmd.MarketID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
		return nil, engine.createMarket(payload.MarketID)

	case protocol.CmdPlaceOrder:
		var payload protocol.PlaceOrderCommand
		if err := engine.decode(cmd, &payload); err != nil {
			return nil, err
		}
		order, err := NewOrderFromCommand(&payload)
		if err != nil {
			logger.Warn("invalid place order command", "market_id", cmd.MarketID, "order_id", payload.OrderID, "error", err)
			return nil, err
		}
		return engine.AddOrder(cmd.MarketID, order)

	case protocol.CmdCancelOrder:
		var payload protocol.CancelOrderCommand
		if err := engine.decode(cmd, &payload); err != nil {
			return nil, err
		}
		if err := payload.Validate(); err != nil {
			logger.Warn("invalid cancel order command", "market_id", cmd.MarketID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
		return engine.CancelOrder(cmd.MarketID, payload.OrderID)
	}

	logger.Warn("unknown command type", "market_id", cmd.MarketID, "type", cmd.Type)
	return nil, fmt.Errorf("%w: command type %d", ErrInvalidParam, cmd.Type)
}

func (engine *MatchingEngine) decode(cmd *protocol.Command, v any) error {
	if err := engine.serializer.Unmarshal(cmd.Payload, v); err != nil {
		logger.Error("failed to unmarshal command payload", "market_id", cmd.MarketID, "type", cmd.Type, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return nil
}

// CreateMarket creates an empty order book for marketID.
func (engine *MatchingEngine) CreateMarket(marketID string) error {
	return engine.createMarket(marketID)
}

func (engine *MatchingEngine) createMarket(marketID string) error {
	if marketID == "" {
		return ErrInvalidParam
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	if _, ok := engine.orderbooks[marketID]; ok {
		return ErrMarketExists
	}
	engine.orderbooks[marketID] = engine.newEngineBook(marketID)

	logger.Info("market created", "market_id", marketID)
	return nil
}

func (engine *MatchingEngine) newEngineBook(marketID string) *engineBook {
	log := NewLogNotifier(marketID, engine.publisher)
	return &engineBook{
		book: NewOrderBookWithConfig(marketID, log, engine.cfg),
		log:  log,
	}
}

// PlaceOrder builds an order from cmd and adds it to the market's book.
func (engine *MatchingEngine) PlaceOrder(marketID string, cmd *protocol.PlaceOrderCommand) (*ProcessingResult, error) {
	order, err := NewOrderFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	return engine.AddOrder(marketID, order)
}

// AddOrder adds a constructed order to the market's book.
func (engine *MatchingEngine) AddOrder(marketID string, order Order) (*ProcessingResult, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	eb, ok := engine.orderbooks[marketID]
	if !ok {
		return nil, ErrNotFound
	}
	return eb.book.AddOrder(order), nil
}

// CancelOrder cancels a resting or pending order. It returns false when the
// order is not in the book.
func (engine *MatchingEngine) CancelOrder(marketID string, orderID string) (bool, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	eb, ok := engine.orderbooks[marketID]
	if !ok {
		return false, ErrNotFound
	}
	return eb.book.CancelOrder(orderID), nil
}

// OrderBook retrieves the order book for a specific market ID.
// Returns nil if the market does not exist. The book must not be used
// concurrently with engine commands.
func (engine *MatchingEngine) OrderBook(marketID string) *OrderBook {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	eb, ok := engine.orderbooks[marketID]
	if !ok {
		return nil
	}
	return eb.book
}

// Snapshot captures every book, sorted by market id, together with the
// position of each book's log stream.
func (engine *MatchingEngine) Snapshot() (*SnapshotMetadata, []*BookSnapshot) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	snaps := make([]*BookSnapshot, 0, len(engine.orderbooks))
	for _, eb := range engine.orderbooks {
		snap := eb.book.Snapshot()
		snap.SeqID = eb.log.SequenceID()
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].MarketID < snaps[j].MarketID
	})

	meta := &SnapshotMetadata{
		Timestamp:     time.Now().UnixNano(),
		EngineVersion: EngineVersion,
		MarketCount:   len(snaps),
	}
	return meta, snaps
}

// Restore recreates the books of snaps. Markets that already exist are
// reported with ErrMarketExists; the remaining markets are still restored.
func (engine *MatchingEngine) Restore(snaps []*BookSnapshot) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	var errs []error
	for _, snap := range snaps {
		if _, ok := engine.orderbooks[snap.MarketID]; ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMarketExists, snap.MarketID))
			continue
		}

		eb := engine.newEngineBook(snap.MarketID)
		if err := eb.book.Restore(snap); err != nil {
			errs = append(errs, fmt.Errorf("restore market %s: %w", snap.MarketID, err))
			continue
		}
		eb.log.SetSequenceID(snap.SeqID)
		engine.orderbooks[snap.MarketID] = eb
	}

	return errors.Join(errs...)
}
