package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	apimw "trade_logger/internal/api/middleware"
	"trade_logger/internal/auth"
	"trade_logger/internal/models"
)

// Ingestor - движок приема сделок, которому API передает запросы
type Ingestor interface {
	RecordTrade(ctx context.Context, trade models.TradeRecord, verifyDuplicate bool) (models.TradeOutcome, error)
	RecordBatch(ctx context.Context, trades []models.TradeRecord) models.BatchResult
	RecordDrawdown(ctx context.Context, snap models.DrawdownSnapshot) models.DrawdownResult
	AccountTickets(ctx context.Context, accountID string) []int64
	TradesConfigured() bool
	DrawdownsConfigured() bool
}

// JournalReader читает локальный журнал
type JournalReader interface {
	RecentOutcomes(ctx context.Context, limit int) ([]models.JournalOutcome, error)
	RecentDrawdowns(ctx context.Context, limit int) ([]models.JournalDrawdown, error)
}

// ServiceInfo - имя и версия сервиса для GET /
type ServiceInfo struct {
	Name    string
	Version string
}

// maxBodySize ограничивает тело запроса (пакет синхронизации истории)
const maxBodySize = 16 << 20

// Handler обрабатывает API запросы
type Handler struct {
	ingest  Ingestor
	journal JournalReader
	auth    *auth.Service
	info    ServiceInfo
	logger  *slog.Logger
	now     func() time.Time
}

// Option настраивает Handler
type Option func(*Handler)

// WithJournal включает эндпоинты журнала
func WithJournal(j JournalReader) Option {
	return func(h *Handler) { h.journal = j }
}

// WithAuth включает проверку токенов терминалов
func WithAuth(a *auth.Service) Option {
	return func(h *Handler) { h.auth = a }
}

func New(ingest Ingestor, info ServiceInfo, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		ingest: ingest,
		info:   info,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Helper функции для JSON ответов

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to write response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// terminalOf возвращает терминал из токена, "-" если авторизация выключена
func terminalOf(r *http.Request) string {
	if terminal, ok := apimw.GetTerminal(r.Context()); ok {
		return terminal
	}

	return "-"
}

// decodeBody читает JSON тело запроса в v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	return json.NewDecoder(r.Body).Decode(v)
}
