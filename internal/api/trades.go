package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"trade_logger/internal/ingest"
	"trade_logger/internal/models"
)

type TradeResponse struct {
	Success   bool                 `json:"success"`
	Message   string               `json:"message"`
	Status    models.OutcomeStatus `json:"status"`
	PageID    string               `json:"notion_page_id,omitempty"`
	AccountID string               `json:"cuenta"`
}

type TicketsResponse struct {
	AccountID string  `json:"cuenta"`
	Total     int     `json:"total"`
	Tickets   []int64 `json:"tickets"`
}

// HandleTrade записывает одну закрытую сделку
func (h *Handler) HandleTrade(w http.ResponseWriter, r *http.Request) {
	var trade models.TradeRecord
	if err := decodeBody(w, r, &trade); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trade.Normalize()
	if err := trade.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("Trade received",
		slog.String("terminal", terminalOf(r)),
		slog.String("account", trade.AccountID),
		slog.Int64("ticket", trade.Ticket),
		slog.String("symbol", trade.Symbol),
		slog.Float64("pnl", trade.ProfitLoss),
		slog.String("outcome", string(trade.Outcome)))

	outcome, err := h.ingest.RecordTrade(r.Context(), trade, true)
	if err != nil {
		h.respondError(w, ingest.HTTPStatus(err), err.Error())
		return
	}

	resp := TradeResponse{
		Success:   true,
		Status:    outcome.Status,
		AccountID: trade.AccountID,
	}

	if outcome.Status == models.StatusSkipped {
		resp.Message = fmt.Sprintf("Trade %d already exists, skipped", trade.Ticket)
	} else {
		resp.Message = fmt.Sprintf("Trade %d recorded", trade.Ticket)
		resp.PageID = outcome.PageID
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// HandleBatch записывает пакет сделок по очереди
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.decodeTrades(w, r)
	if !ok {
		return
	}

	h.respondJSON(w, http.StatusOK, h.ingest.RecordBatch(r.Context(), trades))
}

// HandleSync - синхронизация истории терминала, то же что пакет
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.decodeTrades(w, r)
	if !ok {
		return
	}

	h.logger.Info("History sync started",
		slog.String("terminal", terminalOf(r)),
		slog.Int("trades", len(trades)))

	h.respondJSON(w, http.StatusOK, h.ingest.RecordBatch(r.Context(), trades))
}

// decodeTrades читает и проверяет пакет целиком: одна невалидная сделка
// отклоняет весь запрос
func (h *Handler) decodeTrades(w http.ResponseWriter, r *http.Request) ([]models.TradeRecord, bool) {
	var trades []models.TradeRecord
	if err := decodeBody(w, r, &trades); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	for i := range trades {
		trades[i].Normalize()

		if err := trades[i].Validate(); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("trade #%d: %v", i, err))
			return nil, false
		}
	}

	return trades, true
}

// HandleTickets возвращает все ticket счета, уже записанные в хранилище
func (h *Handler) HandleTickets(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	h.logger.Info("Tickets requested", slog.String("account", account))

	tickets := h.ingest.AccountTickets(r.Context(), account)

	h.logger.Info("Tickets returned",
		slog.String("account", account),
		slog.Int("total", len(tickets)))

	h.respondJSON(w, http.StatusOK, TicketsResponse{
		AccountID: account,
		Total:     len(tickets),
		Tickets:   tickets,
	})
}
