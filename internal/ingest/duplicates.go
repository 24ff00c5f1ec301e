package ingest

import (
	"context"
	"log/slog"

	"trade_logger/internal/notion"
)

// TicketExists проверяет, записан ли уже ticket в основную базу.
//
// Фильтр только по номеру ticket, без счета: совпадение номера на другом
// счете тоже считается дубликатом. При любой ошибке хранилища
// возвращается false.
func (s *Service) TicketExists(ctx context.Context, ticket int64, accountID string) bool {
	if !s.TradesConfigured() {
		return false
	}

	qctx, cancel := s.lookupContext(ctx)
	defer cancel()

	res, err := s.store.Query(qctx, s.cfg.Collections.Trades, notion.Query{
		Filter:   notion.NumberEquals(PropTicket, ticket),
		PageSize: lookupPageSize,
	})
	if err != nil {
		s.logger.Warn("Duplicate check failed, assuming new trade",
			slog.Int64("ticket", ticket),
			slog.String("account", accountID),
			slog.Any("error", err))

		return false
	}

	return len(res.Results) > 0
}
