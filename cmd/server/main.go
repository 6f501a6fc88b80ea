package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/xtrntr/stockbroker/internal/api"
	"github.com/xtrntr/stockbroker/internal/config"
	"github.com/xtrntr/stockbroker/internal/db"
	"github.com/xtrntr/stockbroker/internal/logging"
	"go.uber.org/zap"
)

// Main entry point: serves the persisted order book read-only over HTTP
func main() {
	ctx := context.Background()
	cfg := config.LoadFromEnv("")

	logger, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	var store db.OrderStore = db.NewFileStore(cfg.OrderFile)
	if cfg.OrderDSN != "" {
		pg, err := db.NewPGStore(ctx, cfg.OrderDSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pg.Close()
		store = pg
	}

	handler := api.NewHandler(store, cfg.StockFile, logger)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	handler.Routes(r)

	logger.Info("Starting server", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
