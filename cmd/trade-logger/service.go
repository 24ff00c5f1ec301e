package main

import (
	"log/slog"

	"trade_logger/internal/config"
	"trade_logger/internal/httpmiddleware"
	"trade_logger/internal/ingest"
	"trade_logger/internal/notion"
)

// newIngestService собирает клиент Notion и движок приема сделок
func newIngestService(cfg *config.Config, logger *slog.Logger, opts ...ingest.Option) *ingest.Service {
	client := notion.NewClient(notion.Options{
		BaseURL:     cfg.NotionAPIURL,
		APIKey:      cfg.NotionAPIKey,
		Version:     cfg.NotionVersion,
		Transport:   httpmiddleware.DefaultTransport(),
		LogBodySize: 4 << 10,
		Logger:      logger,
	})

	return ingest.New(client, ingest.Config{
		Collections:   cfg.Collections,
		LookupTimeout: cfg.LookupTimeout,
		ScanTimeout:   cfg.ScanTimeout,
	}, logger, opts...)
}
