package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_logger/internal/notion"
)

func seedTicket(store *fakeStore, account string, ticket int64) {
	store.seed("db-trades", notion.NewProperties().
		Title(PropSymbol, "EURUSD").
		Number(PropTicket, float64(ticket)).
		Select(PropAccountLabel, account))
}

func TestAccountTickets_Paginates(t *testing.T) {
	store := newFakeStore()
	for i := int64(1); i <= 250; i++ {
		seedTicket(store, "FTMO_01", i)
	}
	seedTicket(store, "OTHER", 9999)

	svc := newTestService(t, store, allCollections())

	tickets := svc.AccountTickets(context.Background(), "FTMO_01")
	require.Len(t, tickets, 250)
	assert.EqualValues(t, 1, tickets[0])
	assert.EqualValues(t, 250, tickets[249])
	assert.NotContains(t, tickets, int64(9999))

	q, _ := store.counts()
	assert.Equal(t, 3, q)
}

func TestAccountTickets_TextTickets(t *testing.T) {
	store := newFakeStore()
	store.seed("db-trades", notion.NewProperties().
		Title(PropTicket, "10042").
		Select(PropAccountLabel, "FTMO_01"))
	store.seed("db-trades", notion.NewProperties().
		Title(PropTicket, "n/a").
		Select(PropAccountLabel, "FTMO_01"))
	store.seed("db-trades", notion.NewProperties().
		Select(PropAccountLabel, "FTMO_01"))
	seedTicket(store, "FTMO_01", 10043)

	svc := newTestService(t, store, allCollections())

	assert.Equal(t, []int64{10042, 10043}, svc.AccountTickets(context.Background(), "FTMO_01"))
}

func TestAccountTickets_PartialOnError(t *testing.T) {
	store := newFakeStore()
	for i := int64(1); i <= 150; i++ {
		seedTicket(store, "FTMO_01", i)
	}

	store.queryErr = func(_ string, q notion.Query) error {
		if q.StartCursor != "" {
			return &notion.ConnectivityError{Op: "query", Err: errors.New("reset by peer")}
		}

		return nil
	}

	svc := newTestService(t, store, allCollections())

	tickets := svc.AccountTickets(context.Background(), "FTMO_01")
	assert.Len(t, tickets, 100)
}

func TestAccountTickets_EmptyWhenNotConfigured(t *testing.T) {
	store := newFakeStore()
	store.credentials = false

	svc := newTestService(t, store, allCollections())

	tickets := svc.AccountTickets(context.Background(), "FTMO_01")
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)

	q, _ := store.counts()
	assert.Zero(t, q)
}

func TestAccountTickets_UnknownAccount(t *testing.T) {
	store := newFakeStore()
	seedTicket(store, "FTMO_01", 1)

	svc := newTestService(t, store, allCollections())

	tickets := svc.AccountTickets(context.Background(), "NOPE")
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}
