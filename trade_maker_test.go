package match

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAffordableSize(t *testing.T) {
	tests := []struct {
		name      string
		volume    string
		price     string
		precision string
		scale     int32
		expected  string
	}{
		{name: "truncated at scale", volume: "9", price: "1.86", precision: "0", scale: 20, expected: "4.83870967741935483870"},
		{name: "short scale", volume: "9", price: "1.86", precision: "0", scale: 2, expected: "4.83"},
		{name: "exact", volume: "27", price: "3", precision: "0", scale: 20, expected: "9"},
		{name: "floored to precision", volume: "10", price: "3", precision: "0.1", scale: 20, expected: "3.3"},
		{name: "whole units", volume: "10", price: "3", precision: "1", scale: 20, expected: "3"},
		{name: "less than one unit", volume: "1", price: "3", precision: "1", scale: 20, expected: "0"},
		{name: "zero price", volume: "1", price: "0", precision: "0", scale: 20, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := affordableSize(d(tt.volume), d(tt.price), d(tt.precision), tt.scale)
			assert.True(t, d(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestDiminishAvailableVolume(t *testing.T) {
	t.Run("without limit", func(t *testing.T) {
		mo := newMarket("m", Buy, "1")
		assert.PanicsWithValue(t, ErrNoVolumeLimit, func() {
			mo.DiminishAvailableVolume(decimal.NewFromInt(1))
		})
	})

	t.Run("more than available", func(t *testing.T) {
		mo := NewMarketOrder(OrderOptions{Side: Buy, Size: d("1")}, &VolumeLimit{Available: d("5")})
		assert.PanicsWithValue(t, ErrDiminishExceeded, func() {
			mo.DiminishAvailableVolume(d("6"))
		})
	})

	t.Run("exhausted", func(t *testing.T) {
		mo := NewMarketOrder(OrderOptions{Side: Buy, Size: d("1")}, &VolumeLimit{Available: d("5")})
		mo.DiminishAvailableVolume(d("5"))
		assert.True(t, mo.AvailableVolume().IsZero())
		assert.PanicsWithValue(t, ErrVolumeLimitExhausted, func() {
			mo.DiminishAvailableVolume(d("1"))
		})
	})

	t.Run("negative precision is ignored", func(t *testing.T) {
		mo := NewMarketOrder(OrderOptions{Side: Buy, Size: d("1")}, &VolumeLimit{Available: d("5"), QtyPrecision: d("-1")})
		assert.True(t, mo.HasVolumeLimit())
		assert.True(t, mo.QtyPrecision().IsZero())
	})
}
