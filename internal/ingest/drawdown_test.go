package ingest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

func sampleSnapshot() models.DrawdownSnapshot {
	return models.DrawdownSnapshot{
		AccountID:           "FTMO_01",
		MagicNumber:         777,
		Balance:             10000,
		Equity:              9850,
		PeakBalance:         10200,
		AccountDrawdown:     350,
		AccountDrawdownPct:  3.43,
		StrategyDrawdown:    120,
		StrategyMaxDrawdown: 300,
		StrategyPeakEquity:  10100,
		Timestamp:           "2024.03.11 14:22:09",
	}
}

func TestRecordDrawdown_LoggedOnlyWithoutStore(t *testing.T) {
	store := newFakeStore()
	store.credentials = false

	journal := &fakeJournal{}
	svc := newTestService(t, store, allCollections(), WithJournal(journal))

	res := svc.RecordDrawdown(context.Background(), sampleSnapshot())
	assert.Equal(t, models.DrawdownLoggedOnly, res.Status)

	q, c := store.counts()
	assert.Zero(t, q)
	assert.Zero(t, c)

	assert.Equal(t, []models.DrawdownStatus{models.DrawdownLoggedOnly}, journal.drawdowns)
}

func TestRecordDrawdown_LoggedOnlyWithoutDatabases(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store, Collections{})

	res := svc.RecordDrawdown(context.Background(), sampleSnapshot())
	assert.Equal(t, models.DrawdownLoggedOnly, res.Status)

	_, c := store.counts()
	assert.Zero(t, c)
}

func TestRecordDrawdown_LoggedWithoutDedicatedDatabase(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store, Collections{Trades: "db-trades"})

	res := svc.RecordDrawdown(context.Background(), sampleSnapshot())
	assert.Equal(t, models.DrawdownLogged, res.Status)

	q, c := store.counts()
	assert.Zero(t, q)
	assert.Zero(t, c)
}

func TestRecordDrawdown_Stored(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store, allCollections())

	res := svc.RecordDrawdown(context.Background(), sampleSnapshot())
	assert.Equal(t, models.DrawdownStored, res.Status)
	assert.NotEmpty(t, res.PageID)

	require.Len(t, store.pages["db-drawdowns"], 1)
	props := store.pages["db-drawdowns"][0].Properties

	assert.Equal(t, "2024-03-11T14:22:09", props[PropDDTimestamp].PlainText())
	assert.Equal(t, "FTMO_01", props[PropDDAccount].Select.Name)
	assert.InDelta(t, 9850, *props[PropDDEquity].Number, 1e-9)
	assert.InDelta(t, 3.43, *props[PropDDAccountDDPct].Number, 1e-9)

	magic, ok := props[PropDDStrategyMagicNo].Integer()
	assert.True(t, ok)
	assert.EqualValues(t, 777, magic)
}

func TestRecordDrawdown_ErrorIsReturnedInline(t *testing.T) {
	store := newFakeStore()
	store.createErr = func(string, notion.Properties) error {
		return &notion.RemoteError{Status: http.StatusBadRequest, Code: "validation_error", Message: "Equity is not a property"}
	}

	journal := &fakeJournal{}
	svc := newTestService(t, store, allCollections(), WithJournal(journal))

	res := svc.RecordDrawdown(context.Background(), sampleSnapshot())
	assert.Equal(t, models.DrawdownError, res.Status)
	assert.Contains(t, res.Detail, "Equity is not a property")
	assert.Equal(t, []models.DrawdownStatus{models.DrawdownError}, journal.drawdowns)
}
