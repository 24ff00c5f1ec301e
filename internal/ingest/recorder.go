package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

// RecordTrade записывает сделку в основную базу.
//
// Конфигурация проверяется до любых сетевых вызовов. При verifyDuplicate
// уже записанный ticket возвращает StatusSkipped без записи. Связи со
// счетом и стратегией добавляются, только если удалось их разрешить.
// Ошибки: ErrNotConfigured, *notion.RemoteError, *notion.ConnectivityError.
func (s *Service) RecordTrade(ctx context.Context, trade models.TradeRecord, verifyDuplicate bool) (models.TradeOutcome, error) {
	outcome := models.TradeOutcome{
		AccountID: trade.AccountID,
		Ticket:    trade.Ticket,
	}

	if !s.TradesConfigured() {
		outcome.Status = models.StatusError
		return outcome, fmt.Errorf("record trade %d: %w", trade.Ticket, ErrNotConfigured)
	}

	if verifyDuplicate && s.TicketExists(ctx, trade.Ticket, trade.AccountID) {
		s.logger.Info("Trade already stored, skipping",
			slog.Int64("ticket", trade.Ticket),
			slog.String("account", trade.AccountID))

		outcome.Status = models.StatusSkipped
		outcome.PageID = models.DuplicatePageID
		outcome.Message = "ticket already exists in the database"
		s.recordOutcome(ctx, outcome, "")

		return outcome, nil
	}

	props := s.tradeProperties(ctx, trade)

	s.logger.Info("Sending trade to store",
		slog.Int64("ticket", trade.Ticket),
		slog.String("account", trade.AccountID))

	cctx, cancel := s.lookupContext(ctx)
	defer cancel()

	page, err := s.store.Create(cctx, s.cfg.Collections.Trades, props)
	if err != nil {
		s.logger.Error("Failed to store trade",
			slog.Int64("ticket", trade.Ticket),
			slog.String("account", trade.AccountID),
			slog.Any("error", err))

		outcome.Status = models.StatusError
		outcome.Message = err.Error()
		s.recordOutcome(ctx, outcome, err.Error())
		s.notify(fmt.Sprintf("⚠️ Trade %d (%s) was not stored: %v", trade.Ticket, trade.AccountID, err))

		return outcome, fmt.Errorf("record trade %d: %w", trade.Ticket, err)
	}

	s.logger.Info("✅ Trade stored",
		slog.Int64("ticket", trade.Ticket),
		slog.String("page_id", page.ID))

	outcome.Status = models.StatusSuccess
	outcome.PageID = page.ID
	s.recordOutcome(ctx, outcome, "")

	return outcome, nil
}

func (s *Service) tradeProperties(ctx context.Context, trade models.TradeRecord) notion.Properties {
	closedAt := s.dates.Normalize(trade.ClosedAt)

	var openedAt string
	if trade.OpenedAt != "" {
		openedAt = s.dates.Normalize(trade.OpenedAt)
	}

	accountID := s.resolver.ResolveAccount(ctx, trade.AccountID)
	strategyID := s.resolver.ResolveStrategy(ctx, trade.MagicNumber)

	return notion.NewProperties().
		Title(PropSymbol, trade.Symbol).
		Number(PropTicket, float64(trade.Ticket)).
		Select(PropAccountLabel, trade.AccountID).
		Number(PropMagicNumber, float64(trade.MagicNumber)).
		Select(PropDirection, string(trade.Direction)).
		Number(PropLots, trade.LotSize).
		Number(PropPnL, trade.ProfitLoss).
		Select(PropOutcome, string(trade.Outcome)).
		Number(PropBalance, trade.BalanceAfter).
		Date(PropClosedAt, closedAt).
		RichText(PropComment, trade.Comment).
		RelationTo(PropAccount, accountID).
		RelationTo(PropStrategy, strategyID).
		OptionalDate(PropOpenedAt, openedAt)
}
