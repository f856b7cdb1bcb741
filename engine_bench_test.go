package match

import (
	"testing"

	"github.com/0x5487/matching-kernel/protocol"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

func BenchmarkEngineAddOrder(b *testing.B) {
	engine := NewMatchingEngine(NewDiscardPublishLog())
	if err := engine.CreateMarket("BTC-USDT"); err != nil {
		b.Fatal(err)
	}

	size := decimal.NewFromInt(1)
	orders := make([]*LimitOrder, b.N)
	for i := range orders {
		price := decimal.NewFromInt(int64(i%100000) + 1)
		orders[i] = NewLimitOrder(OrderOptions{ID: xid.New().String(), Side: Buy, Size: size}, price)
	}

	b.ResetTimer()

	var errCount int
	for _, o := range orders {
		if _, err := engine.AddOrder("BTC-USDT", o); err != nil {
			errCount++
		}
	}

	b.StopTimer()

	stats := engine.OrderBook("BTC-USDT").Stats()
	b.Logf("order count: %d", stats.BidOrderCount)
	b.Logf("depth count: %d", stats.BidDepthCount)
	b.Logf("error count: %d", errCount)
}

func BenchmarkEngineExecuteCommand(b *testing.B) {
	engine := NewMatchingEngine(NewDiscardPublishLog())
	if err := engine.CreateMarket("BTC-USDT"); err != nil {
		b.Fatal(err)
	}

	serializer := &protocol.DefaultJSONSerializer{}
	cmds := make([]*protocol.Command, b.N)
	for i := range cmds {
		side, price := protocol.SideBuy, "100"
		if i%2 == 1 {
			side = protocol.SideSell
		}
		payload, err := serializer.Marshal(&protocol.PlaceOrderCommand{
			OrderID:   xid.New().String(),
			Side:      side,
			OrderType: protocol.OrderTypeLimit,
			Price:     price,
			Size:      "1",
		})
		if err != nil {
			b.Fatal(err)
		}
		cmds[i] = &protocol.Command{MarketID: "BTC-USDT", Type: protocol.CmdPlaceOrder, Payload: payload}
	}

	b.ResetTimer()

	for _, cmd := range cmds {
		if _, err := engine.ExecuteCommand(cmd); err != nil {
			b.Fatal(err)
		}
	}
}
