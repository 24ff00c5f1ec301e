package api

import (
	"net/http"
)

type StatusResponse struct {
	Status               string `json:"status"`
	Service              string `json:"service"`
	Version              string `json:"version"`
	NotionConfigured     bool   `json:"notion_configured"`
	DrawdownDBConfigured bool   `json:"drawdown_db_configured"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HandleStatus возвращает состояние сервиса и его настройки
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, StatusResponse{
		Status:               "online",
		Service:              h.info.Name,
		Version:              h.info.Version,
		NotionConfigured:     h.ingest.TradesConfigured(),
		DrawdownDBConfigured: h.ingest.DrawdownsConfigured(),
	})
}

// HandleHealth возвращает статус здоровья сервиса
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format("2006-01-02T15:04:05.000000"),
	})
}
