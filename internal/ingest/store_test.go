package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

// fakeStore - хранилище в памяти с равенством по одному свойству
type fakeStore struct {
	mu          sync.Mutex
	credentials bool
	pages       map[string][]notion.Page
	nextID      int

	queries int
	creates int

	// queryErr/createErr возвращают ошибку для вызова, если не nil
	queryErr  func(databaseID string, q notion.Query) error
	createErr func(databaseID string, props notion.Properties) error

	// queryHook вызывается перед обработкой каждого запроса
	queryHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{credentials: true, pages: make(map[string][]notion.Page)}
}

func (f *fakeStore) HasCredentials() bool { return f.credentials }

func (f *fakeStore) Query(ctx context.Context, databaseID string, q notion.Query) (*notion.QueryResult, error) {
	if f.queryHook != nil {
		f.queryHook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries++

	if f.queryErr != nil {
		if err := f.queryErr(databaseID, q); err != nil {
			return nil, err
		}
	}

	var matched []notion.Page
	for _, p := range f.pages[databaseID] {
		if q.Filter == nil || matches(p, q.Filter) {
			matched = append(matched, p)
		}
	}

	start := 0
	if q.StartCursor != "" {
		start, _ = strconv.Atoi(q.StartCursor)
	}

	size := q.PageSize
	if size <= 0 {
		size = notion.MaxPageSize
	}

	end := min(start+size, len(matched))
	res := &notion.QueryResult{Results: append([]notion.Page{}, matched[start:end]...)}
	if end < len(matched) {
		res.HasMore = true
		res.NextCursor = strconv.Itoa(end)
	}

	return res, nil
}

func (f *fakeStore) Create(ctx context.Context, databaseID string, props notion.Properties) (*notion.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++

	if f.createErr != nil {
		if err := f.createErr(databaseID, props); err != nil {
			return nil, err
		}
	}

	f.nextID++
	page := notion.Page{ID: fmt.Sprintf("page-%d", f.nextID), Properties: props}
	f.pages[databaseID] = append(f.pages[databaseID], page)

	return &page, nil
}

func (f *fakeStore) seed(databaseID string, props notion.Properties) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.pages[databaseID] = append(f.pages[databaseID], notion.Page{
		ID:         fmt.Sprintf("seed-%d", f.nextID),
		Properties: props,
	})
}

func (f *fakeStore) counts() (queries, creates int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.queries, f.creates
}

func (f *fakeStore) resetCounts() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries, f.creates = 0, 0
}

func matches(p notion.Page, filter *notion.Filter) bool {
	v, ok := p.Properties[filter.Property]
	if !ok {
		return false
	}

	switch filter.Type {
	case notion.TypeNumber:
		n, ok := v.Integer()
		return ok && n == filter.Equals.(int64)
	case notion.TypeSelect:
		return v.Select != nil && v.Select.Name == filter.Equals.(string)
	default:
		return v.PlainText() == filter.Equals.(string)
	}
}

type fakeJournal struct {
	mu        sync.Mutex
	outcomes  []models.TradeOutcome
	drawdowns []models.DrawdownStatus
}

func (j *fakeJournal) RecordOutcome(ctx context.Context, o models.TradeOutcome, detail string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.outcomes = append(j.outcomes, o)

	return nil
}

func (j *fakeJournal) RecordDrawdown(ctx context.Context, s models.DrawdownSnapshot, status models.DrawdownStatus) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.drawdowns = append(j.drawdowns, status)

	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, text)
}

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func allCollections() Collections {
	return Collections{
		Trades:     "db-trades",
		Accounts:   "db-accounts",
		Strategies: "db-strategies",
		Drawdowns:  "db-drawdowns",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, store *fakeStore, collections Collections, opts ...Option) *Service {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)

	return New(store, Config{Collections: collections}, discardLogger(), opts...)
}

func sampleTrade() models.TradeRecord {
	return models.TradeRecord{
		AccountID:    "FTMO_01",
		Ticket:       10042,
		MagicNumber:  0,
		Symbol:       "EURUSD",
		Direction:    models.DirectionBuy,
		LotSize:      0.5,
		ProfitLoss:   37.20,
		Outcome:      models.OutcomeWin,
		BalanceAfter: 10037.20,
		ClosedAt:     "2024.03.11T14:22:09",
	}
}
