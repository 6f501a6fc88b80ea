package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Action is the side of a trade
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// Trade is a single validated trade command
type Trade struct {
	Action Action
	Stock  string          // 4 uppercase letters
	Price  decimal.Decimal // at most 2 decimal places
	Volume int64
}

// Order is a resting aggregated trade in the order book
type Order struct {
	Action Action
	Stock  string
	Price  decimal.Decimal
	Volume int64 // grows as matching trades are merged
}

// Matches reports whether the order rests at the trade's (action, stock, price)
func (o Order) Matches(t Trade) bool {
	return o.Action == t.Action && o.Stock == t.Stock && o.Price.Equal(t.Price)
}

// OrderFromTrade builds a new resting order from a trade
func OrderFromTrade(t Trade) Order {
	return Order{Action: t.Action, Stock: t.Stock, Price: t.Price, Volume: t.Volume}
}

// OrderBook keeps orders in insertion order
type OrderBook []Order

// StockSet is the whitelist of tradable stock codes
type StockSet map[string]struct{}

// NewStockSet builds a set from the given codes as-is
func NewStockSet(codes ...string) StockSet {
	s := make(StockSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether code is whitelisted
func (s StockSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the whitelisted codes sorted
func (s StockSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
