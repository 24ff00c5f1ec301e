package ingest

import (
	"context"
	"log/slog"
	"time"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

const (
	DefaultLookupTimeout = 30 * time.Second
	DefaultScanTimeout   = 60 * time.Second
)

// Store - контракт удалённого хранилища, которым пользуется движок
type Store interface {
	HasCredentials() bool
	Query(ctx context.Context, databaseID string, q notion.Query) (*notion.QueryResult, error)
	Create(ctx context.Context, databaseID string, props notion.Properties) (*notion.Page, error)
}

// Journal - локальный журнал обработанных событий
type Journal interface {
	RecordOutcome(ctx context.Context, outcome models.TradeOutcome, detail string) error
	RecordDrawdown(ctx context.Context, snap models.DrawdownSnapshot, status models.DrawdownStatus) error
}

// Notifier - канал оповещений об ошибках основного пути
type Notifier interface {
	Notify(text string)
}

// Collections - идентификаторы баз удалённого хранилища.
// Пустая строка - база не настроена.
type Collections struct {
	Trades     string
	Accounts   string
	Strategies string
	Drawdowns  string
}

// Config - параметры движка
type Config struct {
	Collections   Collections
	LookupTimeout time.Duration
	ScanTimeout   time.Duration
}

// Service - движок приема сделок и снимков просадки
type Service struct {
	store    Store
	cfg      Config
	resolver *Resolver
	dates    *DateNormalizer
	journal  Journal
	notifier Notifier
	logger   *slog.Logger
}

// Option настраивает Service
type Option func(*Service)

// WithJournal включает запись результатов в локальный журнал
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithNotifier включает оповещения об ошибках
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock подменяет источник текущего времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.dates.now = now }
}

// New создает движок. Кэш связей создается один раз здесь и живет,
// пока живет Service.
func New(store Store, cfg Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = DefaultLookupTimeout
	}

	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = DefaultScanTimeout
	}

	s := &Service{
		store:    store,
		cfg:      cfg,
		resolver: NewResolver(store, cfg.Collections, NewRelationCache(), cfg.LookupTimeout, logger),
		dates:    NewDateNormalizer(logger),
		logger:   logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolver возвращает резолвер связей движка
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// TradesConfigured сообщает, можно ли писать сделки в хранилище
func (s *Service) TradesConfigured() bool {
	return s.store.HasCredentials() && s.cfg.Collections.Trades != ""
}

// DrawdownsConfigured сообщает, настроена ли отдельная база просадок
func (s *Service) DrawdownsConfigured() bool {
	return s.cfg.Collections.Drawdowns != ""
}

func (s *Service) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.LookupTimeout)
}

func (s *Service) recordOutcome(ctx context.Context, outcome models.TradeOutcome, detail string) {
	if s.journal == nil {
		return
	}

	if err := s.journal.RecordOutcome(ctx, outcome, detail); err != nil {
		s.logger.Warn("Failed to journal trade outcome",
			slog.Int64("ticket", outcome.Ticket),
			slog.Any("error", err))
	}
}

func (s *Service) notify(text string) {
	if s.notifier != nil {
		s.notifier.Notify(text)
	}
}
