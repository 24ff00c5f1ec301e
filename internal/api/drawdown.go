package api

import (
	"log/slog"
	"net/http"

	"trade_logger/internal/models"
)

type DrawdownResponse struct {
	Success          bool                  `json:"success"`
	Message          string                `json:"message"`
	AccountID        string                `json:"cuenta"`
	MagicNumber      int64                 `json:"magic_number"`
	AccountDrawdown  float64               `json:"drawdown_cuenta"`
	StrategyDrawdown float64               `json:"drawdown_estrategia"`
	StorageStatus    models.DrawdownStatus `json:"storage_status"`
	PageID           string                `json:"notion_page_id,omitempty"`
	Detail           string                `json:"detail,omitempty"`
}

// HandleDrawdown принимает снимок просадки. Ответ всегда 200:
// ошибка хранилища возвращается в storage_status.
func (h *Handler) HandleDrawdown(w http.ResponseWriter, r *http.Request) {
	var snap models.DrawdownSnapshot
	if err := decodeBody(w, r, &snap); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := snap.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("📊 Drawdown received",
		slog.String("terminal", terminalOf(r)),
		slog.String("account", snap.AccountID),
		slog.Int64("magic", snap.MagicNumber),
		slog.Float64("account_dd", snap.AccountDrawdown),
		slog.Float64("account_dd_pct", snap.AccountDrawdownPct),
		slog.Float64("strategy_dd", snap.StrategyDrawdown))

	result := h.ingest.RecordDrawdown(r.Context(), snap)

	h.respondJSON(w, http.StatusOK, DrawdownResponse{
		Success:          true,
		Message:          "Drawdown recorded",
		AccountID:        snap.AccountID,
		MagicNumber:      snap.MagicNumber,
		AccountDrawdown:  snap.AccountDrawdown,
		StrategyDrawdown: snap.StrategyDrawdown,
		StorageStatus:    result.Status,
		PageID:           result.PageID,
		Detail:           result.Detail,
	})
}
