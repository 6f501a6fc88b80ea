package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/xtrntr/stockbroker/internal/config"
	"github.com/xtrntr/stockbroker/internal/db"
)

var defaultStocks = []string{"AAPL", "GOOG", "TSLA", "MSFT", "AMZN"}

// Seed a default whitelist and, when Postgres is configured, the orders table
func main() {
	ctx := context.Background()
	cfg := config.LoadFromEnv("")

	if _, err := os.Stat(cfg.StockFile); err == nil {
		fmt.Printf("Stock file %s already exists. No need to seed.\n", cfg.StockFile)
	} else if errors.Is(err, os.ErrNotExist) {
		if err := db.WriteValidStocks(cfg.StockFile, defaultStocks); err != nil {
			log.Fatalf("Failed to seed stock file: %v", err)
		}
		fmt.Printf("Wrote %d stock codes to %s\n", len(defaultStocks), cfg.StockFile)
	} else {
		log.Fatalf("Failed to check stock file: %v", err)
	}

	if cfg.OrderDSN == "" {
		return
	}

	store, err := db.NewPGStore(ctx, cfg.OrderDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	fmt.Println("Successfully created the orders table!")
}
