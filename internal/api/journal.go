package api

import (
	"log/slog"
	"net/http"
	"strconv"
)

// HandleJournalOutcomes возвращает последние результаты записи сделок
func (h *Handler) HandleJournalOutcomes(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		h.respondError(w, http.StatusNotFound, "Journal is not configured")
		return
	}

	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	outcomes, err := h.journal.RecentOutcomes(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to read journal outcomes", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	h.respondJSON(w, http.StatusOK, outcomes)
}

// HandleJournalDrawdowns возвращает последние снимки просадки
func (h *Handler) HandleJournalDrawdowns(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		h.respondError(w, http.StatusNotFound, "Journal is not configured")
		return
	}

	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	drawdowns, err := h.journal.RecentDrawdowns(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to read journal drawdowns", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	h.respondJSON(w, http.StatusOK, drawdowns)
}

// parseLimit читает ?limit=N; 0 - значение журнала по умолчанию
func (h *Handler) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		h.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}

	return limit, true
}
