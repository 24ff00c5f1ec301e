package ingest

import (
	"context"
	"log/slog"
	"strconv"

	"trade_logger/internal/notion"
)

// AccountTickets возвращает все ticket счета accountID в порядке обнаружения.
//
// Основная база сканируется страницами по 100 с фильтром по метке счета.
// Нечисловые и отсутствующие ticket пропускаются. При ошибке страницы
// сканирование прекращается и возвращается уже собранное.
func (s *Service) AccountTickets(ctx context.Context, accountID string) []int64 {
	tickets := []int64{}

	if !s.TradesConfigured() {
		return tickets
	}

	cursor := ""
	for {
		res, err := s.scanPage(ctx, accountID, cursor)
		if err != nil {
			s.logger.Error("Ticket scan interrupted",
				slog.String("account", accountID),
				slog.Int("collected", len(tickets)),
				slog.Any("error", err))

			return tickets
		}

		for _, page := range res.Results {
			if ticket, ok := pageTicket(page); ok {
				tickets = append(tickets, ticket)
			}
		}

		if !res.HasMore || res.NextCursor == "" {
			return tickets
		}

		cursor = res.NextCursor
	}
}

func (s *Service) scanPage(ctx context.Context, accountID, cursor string) (*notion.QueryResult, error) {
	qctx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	return s.store.Query(qctx, s.cfg.Collections.Trades, notion.Query{
		Filter:      notion.SelectEquals(PropAccountLabel, accountID),
		PageSize:    scanPageSize,
		StartCursor: cursor,
	})
}

// pageTicket читает ticket страницы: текст из одних цифр или целое число
func pageTicket(page notion.Page) (int64, bool) {
	prop, ok := page.Properties[PropTicket]
	if !ok {
		return 0, false
	}

	if n, ok := prop.Integer(); ok {
		return n, true
	}

	text := prop.PlainText()
	if !isDigits(text) {
		return 0, false
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
