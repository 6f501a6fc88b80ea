package exchange

import "github.com/xtrntr/stockbroker/internal/models"

// MergeKind tells whether a merge grew an existing order or added a new one
type MergeKind int

const (
	MergeNone MergeKind = iota
	MergeUpdated
	MergeAdded
)

func (k MergeKind) String() string {
	switch k {
	case MergeUpdated:
		return "updated"
	case MergeAdded:
		return "added"
	default:
		return "none"
	}
}

// Merge folds a validated trade into the book. An order at the same
// (action, stock, price) has its volume increased in place; otherwise a new
// order is appended. Prices compare exactly.
func Merge(t models.Trade, book models.OrderBook) (models.OrderBook, MergeKind) {
	for i := range book {
		if book[i].Matches(t) {
			book[i].Volume += t.Volume
			return book, MergeUpdated
		}
	}
	return append(book, models.OrderFromTrade(t)), MergeAdded
}
