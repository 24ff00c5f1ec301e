package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"trade_logger/internal/models"

	_ "modernc.org/sqlite"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// Journal - локальный журнал обработанных сделок и снимков просадки
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New открывает (или создает) журнал в файле dbPath
func New(dbPath string, logger *slog.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// sqlite не любит параллельных писателей
	db.SetMaxOpenConns(1)

	journal := &Journal{
		db:     db,
		logger: logger,
		now:    time.Now,
	}

	if err := journal.init(); err != nil {
		db.Close()
		return nil, err
	}

	return journal, nil
}

// init инициализирует таблицы БД
func (j *Journal) init() error {
	schema := `
-- Результаты обработки сделок
CREATE TABLE IF NOT EXISTS trade_outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id TEXT NOT NULL,
    ticket INTEGER NOT NULL,
    status TEXT NOT NULL,
    page_id TEXT,
    detail TEXT,
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outcomes_account ON trade_outcomes(account_id, ticket);
CREATE INDEX IF NOT EXISTS idx_outcomes_status ON trade_outcomes(status);

-- Снимки просадки
CREATE TABLE IF NOT EXISTS drawdown_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id TEXT NOT NULL,
    magic_number INTEGER NOT NULL,
    snapshot TEXT NOT NULL,
    storage_status TEXT NOT NULL,
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drawdowns_account ON drawdown_snapshots(account_id);
`

	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}

	j.logger.Info("✅ Journal database initialized")

	return nil
}

// RecordOutcome добавляет результат обработки сделки
func (j *Journal) RecordOutcome(ctx context.Context, outcome models.TradeOutcome, detail string) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trade_outcomes (account_id, ticket, status, page_id, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, outcome.AccountID, outcome.Ticket, string(outcome.Status), outcome.PageID, detail, j.timestamp())
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

// RecordDrawdown добавляет снимок просадки с итоговым статусом сохранения
func (j *Journal) RecordDrawdown(ctx context.Context, snap models.DrawdownSnapshot, status models.DrawdownStatus) error {
	snapshotJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO drawdown_snapshots (account_id, magic_number, snapshot, storage_status, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, snap.AccountID, snap.MagicNumber, string(snapshotJSON), string(status), j.timestamp())
	if err != nil {
		return fmt.Errorf("failed to record drawdown: %w", err)
	}

	return nil
}

// RecentOutcomes возвращает последние limit результатов, новые первыми
func (j *Journal) RecentOutcomes(ctx context.Context, limit int) ([]models.JournalOutcome, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, account_id, ticket, status, coalesce(page_id, ''), coalesce(detail, ''), recorded_at
		FROM trade_outcomes
		ORDER BY id DESC
		LIMIT ?
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := []models.JournalOutcome{}
	for rows.Next() {
		var (
			o          models.JournalOutcome
			status     string
			recordedAt string
		)

		if err := rows.Scan(&o.ID, &o.AccountID, &o.Ticket, &status, &o.PageID, &o.Detail, &recordedAt); err != nil {
			j.logger.Warn("Skipping unreadable outcome row", slog.Any("error", err))
			continue
		}

		o.Status = models.OutcomeStatus(status)
		o.RecordedAt = parseTimestamp(recordedAt)
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// RecentDrawdowns возвращает последние limit снимков, новые первыми
func (j *Journal) RecentDrawdowns(ctx context.Context, limit int) ([]models.JournalDrawdown, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, snapshot, storage_status, recorded_at
		FROM drawdown_snapshots
		ORDER BY id DESC
		LIMIT ?
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drawdowns := []models.JournalDrawdown{}
	for rows.Next() {
		var (
			d            models.JournalDrawdown
			snapshotJSON string
			status       string
			recordedAt   string
		)

		if err := rows.Scan(&d.ID, &snapshotJSON, &status, &recordedAt); err != nil {
			j.logger.Warn("Skipping unreadable drawdown row", slog.Any("error", err))
			continue
		}

		if err := json.Unmarshal([]byte(snapshotJSON), &d.Snapshot); err != nil {
			j.logger.Warn("Skipping corrupt drawdown snapshot",
				slog.Int64("id", d.ID),
				slog.Any("error", err))

			continue
		}

		d.Status = models.DrawdownStatus(status)
		d.RecordedAt = parseTimestamp(recordedAt)
		drawdowns = append(drawdowns, d)
	}

	return drawdowns, rows.Err()
}

// Close закрывает соединение с БД
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) timestamp() string {
	return j.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}

	return t
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}
