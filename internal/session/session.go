package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xtrntr/stockbroker/internal/db"
	"github.com/xtrntr/stockbroker/internal/exchange"
	"github.com/xtrntr/stockbroker/internal/models"
	"go.uber.org/zap"
)

const (
	Prompt      = "$ "
	ExitCommand = "exit"
)

// ErrBatchNotFound is returned when the batch file does not exist
var ErrBatchNotFound = errors.New("file not found")

// Session drives one run: it feeds lines to the exchange, prints feedback
// and writes the book back to the store once at the end.
type Session struct {
	Exchange *exchange.Exchange
	Store    db.OrderStore
	Out      io.Writer
	log      *zap.Logger
}

// Open loads the order book from store and starts a session over it
func Open(ctx context.Context, stocks models.StockSet, store db.OrderStore, out io.Writer, logger *zap.Logger) (*Session, error) {
	book, err := store.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Exchange: exchange.NewExchange(stocks, book, logger),
		Store:    store,
		Out:      out,
		log:      logger,
	}, nil
}

// RunInteractive prompts for commands until "exit" (any case) or end of
// input, then persists the book.
func (s *Session) RunInteractive(ctx context.Context, in io.Reader) error {
	r := bufio.NewReader(in)
	for {
		fmt.Fprint(s.Out, Prompt)
		raw, ok, err := readLine(r)
		if err != nil {
			s.log.Warn("Input read failed", zap.Error(err))
		}
		if !ok {
			fmt.Fprintln(s.Out)
			break
		}
		line := strings.TrimSpace(raw)
		if strings.EqualFold(line, ExitCommand) {
			break
		}
		s.handle(line)
	}
	return s.Flush(ctx)
}

// RunBatch processes every line of the file at path, then persists the
// book. A missing file is reported and nothing is persisted.
func (s *Session) RunBatch(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(s.Out, "File not found: %s\n", path)
			return fmt.Errorf("%w: %s", ErrBatchNotFound, path)
		}
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var readErr error
	for {
		line, ok, err := readLine(r)
		if err != nil {
			readErr = fmt.Errorf("failed to read batch file: %w", err)
		}
		if !ok {
			break
		}
		s.handle(line)
	}
	// Trades accepted before a read failure are still persisted.
	if err := s.Flush(ctx); err != nil {
		return err
	}
	return readErr
}

// Flush writes the whole book to the store
func (s *Session) Flush(ctx context.Context) error {
	book := s.Exchange.GetOrderBook()
	if err := s.Store.SaveOrders(ctx, book); err != nil {
		s.log.Error("Failed to save orders", zap.Error(err))
		return fmt.Errorf("failed to save orders: %w", err)
	}
	s.log.Info("Saved orders", zap.Int("count", len(book)))
	return nil
}

// readLine returns the next line without its terminator. Lines of any
// length are returned whole; ok is false once input is exhausted or broken.
func readLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	if line != "" {
		return strings.TrimRight(line, "\r\n"), true, nil
	}
	if err == io.EOF {
		return "", false, nil
	}
	return "", false, err
}

func (s *Session) handle(line string) {
	fmt.Fprintln(s.Out, s.Exchange.HandleLine(line).Message())
}
