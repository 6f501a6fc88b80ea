package db

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xtrntr/stockbroker/internal/models"
)

// ErrBadRow is returned when a persisted order row has a non-numeric field
var ErrBadRow = errors.New("malformed order row")

// OrderStore loads and persists the whole order book
type OrderStore interface {
	LoadOrders(ctx context.Context) (models.OrderBook, error)
	SaveOrders(ctx context.Context, book models.OrderBook) error
}

// LoadValidStocks reads one stock code per line. Codes are trimmed and
// upper-cased, empty lines are skipped. A missing file gives an empty set.
func LoadValidStocks(path string) (models.StockSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.StockSet{}, nil
		}
		return nil, fmt.Errorf("failed to open stock file: %w", err)
	}
	defer f.Close()

	stocks := models.StockSet{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		code := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if code != "" {
			stocks[code] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stock file: %w", err)
	}
	return stocks, nil
}

// WriteValidStocks writes one code per line
func WriteValidStocks(path string, codes []string) error {
	data := strings.Join(codes, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write stock file: %w", err)
	}
	return nil
}
