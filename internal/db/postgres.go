package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/xtrntr/stockbroker/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	position INTEGER PRIMARY KEY,
	action   TEXT NOT NULL,
	stock    TEXT NOT NULL,
	price    NUMERIC(18, 2) NOT NULL,
	volume   BIGINT NOT NULL
)`

// PGStore keeps the order book in a PostgreSQL table
type PGStore struct {
	Pool *pgxpool.Pool
}

// NewPGStore initializes a new database connection pool
func NewPGStore(ctx context.Context, connString string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &PGStore{Pool: pool}, nil
}

// Close closes the database connection pool
func (s *PGStore) Close() {
	s.Pool.Close()
}

// EnsureSchema creates the orders table if it does not exist
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadOrders retrieves the order book in insertion order
func (s *PGStore) LoadOrders(ctx context.Context) (models.OrderBook, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT action, stock, price::text, volume
		FROM orders
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	book := models.OrderBook{}
	for rows.Next() {
		var (
			action, stock, price string
			volume               int64
		)
		if err := rows.Scan(&action, &stock, &price, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q", ErrBadRow, price)
		}
		book = append(book, models.Order{
			Action: models.Action(action),
			Stock:  stock,
			Price:  p,
			Volume: volume,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return book, nil
}

// SaveOrders replaces the stored book in a single transaction
func (s *PGStore) SaveOrders(ctx context.Context, book models.OrderBook) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}

	batch := &pgx.Batch{}
	for i, o := range book {
		batch.Queue(
			"INSERT INTO orders (position, action, stock, price, volume) VALUES ($1, $2, $3, CAST($4::text AS NUMERIC), $5)",
			i, string(o.Action), o.Stock, o.Price.StringFixed(pricePlaces), o.Volume)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
