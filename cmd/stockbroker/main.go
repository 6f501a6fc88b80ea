package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xtrntr/stockbroker/internal/config"
	"github.com/xtrntr/stockbroker/internal/db"
	"github.com/xtrntr/stockbroker/internal/logging"
	"github.com/xtrntr/stockbroker/internal/session"
	"go.uber.org/zap"
)

const usage = "Usage: ./stockbroker.sh [orders.txt]"

// Main entry point: loads the whitelist and order book, then runs an
// interactive or batch session
func main() {
	cfg := config.LoadFromEnv("")
	os.Exit(run(context.Background(), cfg, os.Args[1:], os.Stdin, os.Stdout))
}

func run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(stdout, usage)
		return 2
	}

	logger, closeLog, err := logging.NewAuditLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open audit log: %v\n", err)
		logger, closeLog = zap.NewNop(), func() error { return nil }
	}
	defer closeLog()

	stocks, err := db.LoadValidStocks(cfg.StockFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load stock codes: %v\n", err)
		return 1
	}
	logger.Info("Loaded stock codes", zap.Int("count", len(stocks)))

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open order store: %v\n", err)
		return 1
	}
	defer closeStore()

	s, err := session.Open(ctx, stocks, store, stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if len(args) == 0 {
		err = s.RunInteractive(ctx, stdin)
	} else {
		err = s.RunBatch(ctx, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func openStore(ctx context.Context, cfg config.Config) (db.OrderStore, func(), error) {
	if cfg.OrderDSN == "" {
		return db.NewFileStore(cfg.OrderFile), func() {}, nil
	}
	pg, err := db.NewPGStore(ctx, cfg.OrderDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
