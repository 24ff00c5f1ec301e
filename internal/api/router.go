package api

import (
	"net/http"

	"github.com/gorilla/mux"

	apimw "trade_logger/internal/api/middleware"
	"trade_logger/internal/middleware"
)

// SetupRouter настраивает роутинг для API
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// CORS и лог запросов для всех маршрутов
	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger(h.logger))

	// Публичные маршруты
	r.HandleFunc("/", h.HandleStatus).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	// Маршруты терминала (токен нужен, если задан секрет)
	api := r.NewRoute().Subrouter()
	if h.auth != nil {
		api.Use(apimw.AuthMiddleware(h.auth, h.logger))
	}

	api.HandleFunc("/tickets/{account}", h.HandleTickets).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trade", h.HandleTrade).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/trade/batch", h.HandleBatch).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sync", h.HandleSync).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/drawdown", h.HandleDrawdown).Methods(http.MethodPost, http.MethodOptions)

	// Журнал
	api.HandleFunc("/api/journal/outcomes", h.HandleJournalOutcomes).Methods(http.MethodGet)
	api.HandleFunc("/api/journal/drawdowns", h.HandleJournalDrawdowns).Methods(http.MethodGet)

	return r
}
