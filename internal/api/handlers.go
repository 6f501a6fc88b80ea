package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xtrntr/stockbroker/internal/db"
	"github.com/xtrntr/stockbroker/internal/models"
	"go.uber.org/zap"
)

// Handler serves the persisted order book read-only
type Handler struct {
	Store     db.OrderStore
	StockFile string
	log       *zap.Logger
}

type orderView struct {
	Action string `json:"action"`
	Stock  string `json:"stock"`
	Price  string `json:"price"`
	Volume int64  `json:"volume"`
}

// NewHandler creates a new handler
func NewHandler(store db.OrderStore, stockFile string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, StockFile: stockFile, log: logger}
}

// Routes registers the viewer endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/orderbook", h.GetOrderBook)
	r.Get("/orderbook/{action}", h.GetOrderBookSide)
	r.Get("/stocks", h.GetStocks)
}

// GetOrderBook returns every resting order in book order
func (h *Handler) GetOrderBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.Store.LoadOrders(r.Context())
	if err != nil {
		h.log.Error("Failed to load orders", zap.Error(err))
		http.Error(w, `{"error": "Failed to load order book"}`, http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, toViews(book, ""))
}

// GetOrderBookSide returns only buy or sell orders
func (h *Handler) GetOrderBookSide(w http.ResponseWriter, r *http.Request) {
	action := models.Action(chi.URLParam(r, "action"))
	if action != models.Buy && action != models.Sell {
		http.Error(w, `{"error": "action must be 'buy' or 'sell'"}`, http.StatusBadRequest)
		return
	}

	book, err := h.Store.LoadOrders(r.Context())
	if err != nil {
		h.log.Error("Failed to load orders", zap.Error(err))
		http.Error(w, `{"error": "Failed to load order book"}`, http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, toViews(book, action))
}

// GetStocks returns the whitelisted stock codes
func (h *Handler) GetStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := db.LoadValidStocks(h.StockFile)
	if err != nil {
		h.log.Error("Failed to load stock codes", zap.Error(err))
		http.Error(w, `{"error": "Failed to load stock codes"}`, http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, stocks.Codes())
}

func toViews(book models.OrderBook, action models.Action) []orderView {
	views := []orderView{}
	for _, o := range book {
		if action != "" && o.Action != action {
			continue
		}
		views = append(views, orderView{
			Action: string(o.Action),
			Stock:  o.Stock,
			Price:  o.Price.StringFixed(2),
			Volume: o.Volume,
		})
	}
	return views
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("Failed to write response", zap.Error(err))
	}
}
