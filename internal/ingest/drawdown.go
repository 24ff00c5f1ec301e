package ingest

import (
	"context"
	"log/slog"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

// RecordDrawdown сохраняет снимок просадки или только пишет его в лог.
// Ошибки хранилища не пробрасываются, а возвращаются в результате
// со статусом DrawdownError.
func (s *Service) RecordDrawdown(ctx context.Context, snap models.DrawdownSnapshot) models.DrawdownResult {
	result := s.storeDrawdown(ctx, snap)

	if s.journal != nil {
		if err := s.journal.RecordDrawdown(ctx, snap, result.Status); err != nil {
			s.logger.Warn("Failed to journal drawdown snapshot",
				slog.String("account", snap.AccountID),
				slog.Any("error", err))
		}
	}

	return result
}

func (s *Service) storeDrawdown(ctx context.Context, snap models.DrawdownSnapshot) models.DrawdownResult {
	target := s.cfg.Collections.Drawdowns
	if target == "" {
		target = s.cfg.Collections.Trades
	}

	if !s.store.HasCredentials() || target == "" {
		s.logger.Info("Drawdown received but no database configured",
			slog.String("account", snap.AccountID),
			slog.Float64("account_dd", snap.AccountDrawdown))

		return models.DrawdownResult{
			Status:  models.DrawdownLoggedOnly,
			Message: "no drawdown database configured",
		}
	}

	// без отдельной базы просадок снимок только логируется
	if s.cfg.Collections.Drawdowns == "" {
		s.logger.Info("📊 Drawdown",
			slog.String("account", snap.AccountID),
			slog.Int64("magic", snap.MagicNumber),
			slog.Float64("account_dd", snap.AccountDrawdown),
			slog.Float64("account_dd_pct", snap.AccountDrawdownPct),
			slog.Float64("strategy_dd", snap.StrategyDrawdown))

		return models.DrawdownResult{
			Status:  models.DrawdownLogged,
			Message: "drawdown written to logs",
		}
	}

	props := notion.NewProperties().
		Title(PropDDTimestamp, s.dates.Normalize(snap.Timestamp)).
		Select(PropDDAccount, snap.AccountID).
		Number(PropDDStrategyMagicNo, float64(snap.MagicNumber)).
		Number(PropDDBalance, snap.Balance).
		Number(PropDDEquity, snap.Equity).
		Number(PropDDPeakBalance, snap.PeakBalance).
		Number(PropDDAccountDD, snap.AccountDrawdown).
		Number(PropDDAccountDDPct, snap.AccountDrawdownPct).
		Number(PropDDStrategyDD, snap.StrategyDrawdown).
		Number(PropDDStrategyMaxDD, snap.StrategyMaxDrawdown).
		Number(PropDDStrategyPeak, snap.StrategyPeakEquity)

	cctx, cancel := s.lookupContext(ctx)
	defer cancel()

	page, err := s.store.Create(cctx, s.cfg.Collections.Drawdowns, props)
	if err != nil {
		s.logger.Error("Failed to store drawdown",
			slog.String("account", snap.AccountID),
			slog.Any("error", err))

		return models.DrawdownResult{
			Status: models.DrawdownError,
			Detail: err.Error(),
		}
	}

	s.logger.Info("✅ Drawdown stored", slog.String("account", snap.AccountID))

	return models.DrawdownResult{
		Status: models.DrawdownStored,
		PageID: page.ID,
	}
}
