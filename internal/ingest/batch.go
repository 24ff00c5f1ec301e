package ingest

import (
	"context"
	"log/slog"

	"trade_logger/internal/models"
)

// RecordBatch записывает сделки строго по очереди, в порядке входа.
// Ошибка одной сделки не прерывает обработку остальных.
func (s *Service) RecordBatch(ctx context.Context, trades []models.TradeRecord) models.BatchResult {
	result := models.BatchResult{
		Received:  len(trades),
		Results:   []models.BatchItem{},
		Duplicate: []models.BatchItem{},
		Errors:    []models.BatchItem{},
	}

	for _, trade := range trades {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, models.BatchItem{
				Ticket: trade.Ticket,
				Status: models.StatusError,
				Detail: err.Error(),
			})

			continue
		}

		outcome, err := s.RecordTrade(ctx, trade, true)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, models.BatchItem{
				Ticket: trade.Ticket,
				Status: models.StatusError,
				Detail: err.Error(),
			})
		case outcome.Status == models.StatusSkipped:
			result.Duplicate = append(result.Duplicate, models.BatchItem{
				Ticket:  trade.Ticket,
				Status:  models.StatusSkipped,
				Message: "already exists",
			})
		default:
			result.Results = append(result.Results, models.BatchItem{
				Ticket: trade.Ticket,
				Status: models.StatusSuccess,
				PageID: outcome.PageID,
			})
		}
	}

	result.Succeeded = len(result.Results)
	result.Skipped = len(result.Duplicate)
	result.Failed = len(result.Errors)

	s.logger.Info("Batch processed",
		slog.Int("received", result.Received),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))

	return result
}
