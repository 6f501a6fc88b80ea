package exchange

import (
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xtrntr/stockbroker/internal/models"
)

// Reason says why a trade was rejected
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidAction
	ReasonUnknownStock
	ReasonBadStockFormat
	ReasonBadPrice
	ReasonBadVolume
)

const (
	StockCodeLength       = 4
	MinVolume       int64 = 1
	MaxVolume       int64 = 1_000_000
	pricePlaces           = 2
	// MaxPriceDigits matches the NUMERIC(18, 2) orders column
	MaxPriceDigits = 18
)

// MinPrice is the lowest accepted trade price, inclusive
var MinPrice = decimal.RequireFromString("0.50")

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidAction:
		return "invalid_action"
	case ReasonUnknownStock:
		return "unknown_stock"
	case ReasonBadStockFormat:
		return "bad_stock_format"
	case ReasonBadPrice:
		return "bad_price"
	case ReasonBadVolume:
		return "bad_volume"
	default:
		return "unknown"
	}
}

// Message is the text shown to the user for a rejection
func (r Reason) Message() string {
	switch r {
	case ReasonInvalidAction:
		return "Invalid trade action."
	case ReasonUnknownStock:
		return "Invalid stock code."
	case ReasonBadStockFormat:
		return "Stock code must be 4 uppercase letters."
	case ReasonBadPrice:
		return "Invalid trade price."
	case ReasonBadVolume:
		return "Invalid trade volume."
	default:
		return ""
	}
}

// Validate runs the trade checks in order and returns the first failure,
// or ReasonNone when the trade is accepted.
func Validate(t models.Trade, validStocks models.StockSet) Reason {
	if t.Action != models.Buy && t.Action != models.Sell {
		return ReasonInvalidAction
	}
	if !validStocks.Contains(t.Stock) {
		return ReasonUnknownStock
	}
	// Whitelist entries are only trimmed and upper-cased on load, so a
	// malformed entry can still get past the membership check.
	if !isStockCode(t.Stock) {
		return ReasonBadStockFormat
	}
	if !isPrice(t.Price) {
		return ReasonBadPrice
	}
	if t.Volume < MinVolume || t.Volume > MaxVolume {
		return ReasonBadVolume
	}
	return ReasonNone
}

// IsValid reports whether the trade is accepted, along with the rejection reason
func IsValid(t models.Trade, validStocks models.StockSet) (bool, Reason) {
	r := Validate(t, validStocks)
	return r == ReasonNone, r
}

// isPrice checks the exponent before any arithmetic, since comparing
// against a value like 1e10000000 rescales to a huge coefficient.
func isPrice(p decimal.Decimal) bool {
	if exp := p.Exponent(); exp > MaxPriceDigits || exp < -MaxLineLength {
		return false
	}
	if p.LessThan(MinPrice) {
		return false
	}
	rounded := p.Round(pricePlaces)
	return rounded.Equal(p) && rounded.NumDigits() <= MaxPriceDigits
}

// isStockCode requires 4 characters with at least one cased letter and no
// lowercase ones.
func isStockCode(s string) bool {
	if utf8.RuneCountInString(s) != StockCodeLength {
		return false
	}
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
