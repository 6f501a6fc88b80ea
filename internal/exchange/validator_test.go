package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xtrntr/stockbroker/internal/models"
)

func trade(action, stock, price string, volume int64) models.Trade {
	return models.Trade{
		Action: models.Action(action),
		Stock:  stock,
		Price:  decimal.RequireFromString(price),
		Volume: volume,
	}
}

func TestValidate(t *testing.T) {
	stocks := models.NewStockSet("AAPL", "GOOG", "TSLA")

	tests := []struct {
		name   string
		trade  models.Trade
		expect Reason
	}{
		{name: "BuyValid", trade: trade("buy", "AAPL", "1000.00", 100), expect: ReasonNone},
		{name: "SellValid", trade: trade("sell", "AAPL", "1000.10", 10), expect: ReasonNone},
		{name: "MaxVolume", trade: trade("sell", "AAPL", "1200.00", 1000000), expect: ReasonNone},
		{name: "MinVolume", trade: trade("buy", "GOOG", "10.00", 1), expect: ReasonNone},
		{name: "MinPrice", trade: trade("buy", "TSLA", "0.50", 5), expect: ReasonNone},
		{name: "ExtremePrice", trade: trade("sell", "AAPL", "2000.00", 5), expect: ReasonNone},
		{name: "OneDecimalPlace", trade: trade("buy", "AAPL", "12.5", 5), expect: ReasonNone},
		{name: "TrailingZeros", trade: trade("buy", "AAPL", "12.500", 5), expect: ReasonNone},
		{name: "UppercaseAction", trade: trade("BUY", "AAPL", "1000.00", 100), expect: ReasonInvalidAction},
		{name: "UnknownAction", trade: trade("hold", "AAPL", "1000.00", 100), expect: ReasonInvalidAction},
		{name: "FiveLetterCode", trade: trade("buy", "GOOGL", "1200.00", 200), expect: ReasonUnknownStock},
		{name: "NotWhitelisted", trade: trade("buy", "MSFT", "1000.00", 100), expect: ReasonUnknownStock},
		{name: "LowercaseCode", trade: trade("buy", "aapl", "1000.00", 100), expect: ReasonUnknownStock},
		{name: "UnknownStockBadVolume", trade: trade("buy", "MSFT", "1000.00", 0), expect: ReasonUnknownStock},
		{name: "PriceTooLow", trade: trade("buy", "AAPL", "0.49", 50), expect: ReasonBadPrice},
		{name: "NegativePrice", trade: trade("sell", "AAPL", "-2000.00", 5), expect: ReasonBadPrice},
		{name: "ThreeDecimalPlaces", trade: trade("buy", "AAPL", "10.001", 5), expect: ReasonBadPrice},
		{name: "NegativeVolume", trade: trade("sell", "AAPL", "1200.00", -1), expect: ReasonBadVolume},
		{name: "ZeroVolume", trade: trade("sell", "AAPL", "1200.00", 0), expect: ReasonBadVolume},
		{name: "VolumeOverMax", trade: trade("sell", "AAPL", "1200.00", 1000001), expect: ReasonBadVolume},
		{name: "VolumeFarOverMax", trade: trade("sell", "AAPL", "1200.00", 2000000), expect: ReasonBadVolume},
		{name: "ActionCheckedFirst", trade: trade("hold", "GOOGL", "0.01", 0), expect: ReasonInvalidAction},
		{name: "PriceCheckedBeforeVolume", trade: trade("buy", "AAPL", "0.01", 0), expect: ReasonBadPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Validate(tt.trade, stocks))
		})
	}
}

func TestValidate_MalformedWhitelistEntry(t *testing.T) {
	// The loader only trims and upper-cases, so these can reach the set.
	stocks := models.NewStockSet("GOOGL", "AB", "1234", "AB1C")

	assert.Equal(t, ReasonBadStockFormat, Validate(trade("buy", "GOOGL", "10.00", 1), stocks))
	assert.Equal(t, ReasonBadStockFormat, Validate(trade("buy", "AB", "10.00", 1), stocks))
	assert.Equal(t, ReasonBadStockFormat, Validate(trade("buy", "1234", "10.00", 1), stocks))
	assert.Equal(t, ReasonNone, Validate(trade("buy", "AB1C", "10.00", 1), stocks))
}

func TestValidate_EmptyWhitelist(t *testing.T) {
	assert.Equal(t, ReasonUnknownStock, Validate(trade("buy", "AAPL", "10.00", 1), models.StockSet{}))
	assert.Equal(t, ReasonUnknownStock, Validate(trade("buy", "AAPL", "10.00", 1), nil))
}

func TestIsValid(t *testing.T) {
	stocks := models.NewStockSet("AAPL")

	ok, reason := IsValid(trade("sell", "AAPL", "1200.00", 1000000), stocks)
	assert.True(t, ok)
	assert.Equal(t, ReasonNone, reason)

	ok, reason = IsValid(trade("sell", "AAPL", "1200.00", 1000001), stocks)
	assert.False(t, ok)
	assert.Equal(t, ReasonBadVolume, reason)
}

func TestReason_Message(t *testing.T) {
	assert.Equal(t, "Invalid trade action.", ReasonInvalidAction.Message())
	assert.Equal(t, "Invalid stock code.", ReasonUnknownStock.Message())
	assert.Equal(t, "Stock code must be 4 uppercase letters.", ReasonBadStockFormat.Message())
	assert.Equal(t, "Invalid trade price.", ReasonBadPrice.Message())
	assert.Equal(t, "Invalid trade volume.", ReasonBadVolume.Message())
	assert.Empty(t, ReasonNone.Message())
	assert.Equal(t, "bad_price", ReasonBadPrice.String())
}

func TestValidate_PriceMagnitude(t *testing.T) {
	stocks := models.NewStockSet("AAPL")

	tests := []struct {
		name   string
		price  string
		expect Reason
	}{
		{name: "HugeExponent", price: "1e10000000", expect: ReasonBadPrice},
		{name: "TinyExponent", price: "1e-10000000", expect: ReasonBadPrice},
		{name: "ExponentNotation", price: "1.5e3", expect: ReasonNone},
		{name: "LargestColumnValue", price: "9999999999999999.99", expect: ReasonNone},
		{name: "TooManyDigits", price: "10000000000000000.00", expect: ReasonBadPrice},
		{name: "ManyTrailingZeros", price: "12.50000000000000000000000000", expect: ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Validate(trade("buy", "AAPL", tt.price, 1), stocks))
		})
	}
}
