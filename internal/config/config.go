package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds file locations and backends for a session
type Config struct {
	StockFile string // whitelist, one code per line
	OrderFile string // CSV order book, used when OrderDSN is empty
	LogFile   string // audit log
	OrderDSN  string // Postgres order store when set
	HTTPAddr  string // cmd/server listen address
}

// Default returns the file names used when nothing is configured
func Default() Config {
	return Config{
		StockFile: "stockcode.csv",
		OrderFile: "orders.csv",
		LogFile:   "stockbroker.log",
		HTTPAddr:  ":8080",
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("STOCKBROKER_STOCK_FILE"); v != "" {
		cfg.StockFile = v
	}
	if v := os.Getenv("STOCKBROKER_ORDER_FILE"); v != "" {
		cfg.OrderFile = v
	}
	if v := os.Getenv("STOCKBROKER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("STOCKBROKER_ORDER_DSN"); v != "" {
		cfg.OrderDSN = v
	}
	if v := os.Getenv("STOCKBROKER_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	return cfg
}
