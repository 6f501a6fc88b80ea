package exchange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtrntr/stockbroker/internal/models"
	"go.uber.org/zap"
)

// Outcome classifies how a single input line was handled
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeFormatError
	OutcomeParseError
	OutcomeRejected
)

// LineResult is the result of processing one command line
type LineResult struct {
	Outcome Outcome
	Reason  Reason    // set when Outcome is OutcomeRejected
	Merge   MergeKind // set when Outcome is OutcomeAccepted
	Trade   models.Trade
	Err     error
}

// Message is the feedback printed to the user for this line
func (r LineResult) Message() string {
	switch r.Outcome {
	case OutcomeAccepted:
		if r.Merge == MergeUpdated {
			return "Trade volume adjusted."
		}
		return "Trade book added."
	case OutcomeFormatError:
		return "Invalid command format."
	case OutcomeParseError:
		return fmt.Sprintf("Error processing trade: %v", r.Err)
	case OutcomeRejected:
		return r.Reason.Message()
	}
	return ""
}

// Exchange holds the state of one session: the whitelist, the order book
// and the audit logger.
type Exchange struct {
	Stocks models.StockSet
	Book   models.OrderBook
	log    *zap.Logger
}

// NewExchange creates a session over an already loaded whitelist and book
func NewExchange(stocks models.StockSet, book models.OrderBook, logger *zap.Logger) *Exchange {
	if stocks == nil {
		stocks = models.StockSet{}
	}
	if book == nil {
		book = models.OrderBook{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exchange{Stocks: stocks, Book: book, log: logger}
}

// HandleLine parses, validates and merges one command line. It never fails
// the session; problems are reported in the result.
func (e *Exchange) HandleLine(line string) LineResult {
	trade, err := ParseLine(line)
	if err != nil {
		outcome := OutcomeParseError
		if errors.Is(err, ErrFormat) {
			outcome = OutcomeFormatError
		}
		e.log.Warn("Rejected line", zap.String("line", strings.TrimSpace(line)), zap.Error(err))
		return LineResult{Outcome: outcome, Err: err}
	}
	return e.Submit(trade)
}

// Submit validates a parsed trade and merges it into the book when accepted
func (e *Exchange) Submit(t models.Trade) LineResult {
	if reason := Validate(t, e.Stocks); reason != ReasonNone {
		fields := append([]zap.Field{zap.Stringer("reason", reason)}, tradeFields(t)...)
		e.log.Warn("Rejected trade", fields...)
		return LineResult{Outcome: OutcomeRejected, Reason: reason, Trade: t}
	}

	var kind MergeKind
	e.Book, kind = Merge(t, e.Book)

	side := strings.ToUpper(string(t.Action))
	if kind == MergeUpdated {
		e.log.Info("Updated "+side+" trade", tradeFields(t)...)
	} else {
		e.log.Info("Added new "+side+" trade", tradeFields(t)...)
	}
	return LineResult{Outcome: OutcomeAccepted, Merge: kind, Trade: t}
}

// GetOrderBook returns the current order book
func (e *Exchange) GetOrderBook() models.OrderBook {
	return e.Book
}

func tradeFields(t models.Trade) []zap.Field {
	return []zap.Field{
		zap.String("action", string(t.Action)),
		zap.String("stock", t.Stock),
		zap.String("price", t.Price.String()),
		zap.Int64("volume", t.Volume),
	}
}
