package match

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

func BenchmarkPlaceOrders(b *testing.B) {
	book := NewOrderBook("BTC-USDT", DiscardNotifier{})

	// Use fixed seed for repeatability
	rng := rand.New(rand.NewSource(42))
	midPrice := int64(10000)

	// 1000 ticks: prices from 9500 to 10500
	priceCache := make([]decimal.Decimal, 1001)
	for i := int64(0); i <= 1000; i++ {
		priceCache[i] = decimal.NewFromInt(midPrice - 500 + i)
	}
	sizeOne := decimal.NewFromInt(1)

	orders := make([]*LimitOrder, b.N)
	for i := range orders {
		var priceIdx int
		side := Buy

		// 80% in the top 10 ticks of either side, 20% deeper
		offset := rng.Intn(10) + 1
		if rng.Intn(100) >= 80 {
			offset = rng.Intn(490) + 11
		}
		if rng.Intn(2) == 0 {
			priceIdx = 500 - offset
		} else {
			side = Sell
			priceIdx = 500 + offset
		}

		orders[i] = NewLimitOrder(OrderOptions{ID: strconv.Itoa(i), Side: side, Size: sizeOne}, priceCache[priceIdx])
	}

	b.ResetTimer()

	for _, o := range orders {
		book.AddOrder(o)
	}

	b.StopTimer()

	stats := book.Stats()
	b.Logf("final book: bids=%d levels, asks=%d levels", stats.BidDepthCount, stats.AskDepthCount)

	if totalSeconds := b.Elapsed().Seconds(); totalSeconds > 0 {
		b.ReportMetric(float64(b.N)/totalSeconds, "orders/sec")
	}
}

func BenchmarkMatching(b *testing.B) {
	book := NewOrderBook("MATCH-USDT", DiscardNotifier{})

	price := decimal.NewFromInt(10000)
	size := decimal.NewFromInt(1)

	sells := make([]*LimitOrder, b.N)
	buys := make([]*LimitOrder, b.N)
	for i := 0; i < b.N; i++ {
		sells[i] = NewLimitOrder(OrderOptions{ID: "sell-" + strconv.Itoa(i), Side: Sell, Size: size}, price)
		buys[i] = NewLimitOrder(OrderOptions{ID: "buy-" + strconv.Itoa(i), Side: Buy, Size: size}, price)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		book.AddOrder(sells[i])
		book.AddOrder(buys[i])
	}

	b.StopTimer()

	// each loop is 2 orders
	if totalSeconds := b.Elapsed().Seconds(); totalSeconds > 0 {
		b.ReportMetric(float64(b.N)*2/totalSeconds, "orders/sec")
	}
}

func BenchmarkStopCascade(b *testing.B) {
	size := decimal.NewFromInt(1)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		book := NewOrderBook("STOP-USDT", DiscardNotifier{})
		book.ImportBookData(BookData{MarketPrice: decimal.NewNullDecimal(decimal.NewFromInt(100))})
		for p := int64(101); p <= 200; p++ {
			price := decimal.NewFromInt(p)
			book.AddOrder(NewStopMarketOrder(OrderOptions{Side: Buy, Size: size}, price, nil))
			book.AddOrder(NewLimitOrder(OrderOptions{Side: Sell, Size: size}, price.Add(decimal.NewFromInt(1))))
		}
		book.AddOrder(NewLimitOrder(OrderOptions{Side: Sell, Size: size}, decimal.NewFromInt(101)))
		b.StartTimer()

		book.AddOrder(NewMarketOrder(OrderOptions{Side: Buy, Size: size}, nil))
	}
}
