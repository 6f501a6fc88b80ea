package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xtrntr/stockbroker/internal/models"
)

const (
	orderFields = 4
	pricePlaces = 2
)

// FileStore keeps the order book in a CSV file with rows of
// action,stock,price,volume
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed order store
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// LoadOrders reads the order file. A missing file is an empty book and rows
// without exactly 4 fields are skipped.
func (s *FileStore) LoadOrders(ctx context.Context) (models.OrderBook, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.OrderBook{}, nil
		}
		return nil, fmt.Errorf("failed to open order file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	book := models.OrderBook{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order file: %w", err)
		}
		if len(record) != orderFields {
			continue
		}
		order, err := parseOrder(record)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: %w", s.Path, line, err)
		}
		book = append(book, order)
	}
	return book, nil
}

// SaveOrders rewrites the whole order file
func (s *FileStore) SaveOrders(ctx context.Context, book models.OrderBook) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create order file: %w", err)
	}

	w := csv.NewWriter(f)
	for _, o := range book {
		if err := w.Write(formatOrder(o)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write order: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush order file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close order file: %w", err)
	}
	return nil
}

func parseOrder(record []string) (models.Order, error) {
	price, err := decimal.NewFromString(record[2])
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: price %q", ErrBadRow, record[2])
	}
	volume, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: volume %q", ErrBadRow, record[3])
	}
	return models.Order{
		Action: models.Action(record[0]),
		Stock:  record[1],
		Price:  price,
		Volume: volume,
	}, nil
}

func formatOrder(o models.Order) []string {
	return []string{
		string(o.Action),
		o.Stock,
		o.Price.StringFixed(pricePlaces),
		strconv.FormatInt(o.Volume, 10),
	}
}
