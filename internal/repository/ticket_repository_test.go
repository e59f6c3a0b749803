package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

func ticketFixture(id, userID string, status domain.TicketStatus) *domain.Ticket {
	return &domain.Ticket{
		ID:            id,
		TripID:        "BF101",
		UserID:        userID,
		PassengerName: "Jean Dupont",
		SeatNumber:    "A1",
		TripType:      domain.TripTypeOneWay,
		PurchaseDate:  time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		TravelDate:    time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC),
		QRCode:        "qr-" + id,
		Status:        status,
	}
}

func TestMemoryTicketRepositoryInsertionOrder(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	for _, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, repo.Create(ctx, ticketFixture(id, "u1", domain.TicketStatusValid)))
	}

	tickets, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "t1", tickets[0].ID)
	assert.Equal(t, "t2", tickets[1].ID)
	assert.Equal(t, "t3", tickets[2].ID)
}

func TestMemoryTicketRepositoryStatusFilter(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, ticketFixture("t1", "u1", domain.TicketStatusValid)))
	require.NoError(t, repo.Create(ctx, ticketFixture("t2", "u1", domain.TicketStatusCancelled)))
	require.NoError(t, repo.Create(ctx, ticketFixture("t3", "u1", domain.TicketStatusValid)))
	require.NoError(t, repo.Create(ctx, ticketFixture("t4", "u2", domain.TicketStatusValid)))

	valid, err := repo.ListByUserAndStatus(ctx, "u1", domain.TicketStatusValid)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	assert.Equal(t, "t1", valid[0].ID)
	assert.Equal(t, "t3", valid[1].ID)

	cancelled, err := repo.ListByUserAndStatus(ctx, "u1", domain.TicketStatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
}

func TestMemoryTicketRepositorySnapshotIsolation(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, ticketFixture("t1", "u1", domain.TicketStatusValid)))

	snapshot, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)

	updated := ticketFixture("t1", "u1", domain.TicketStatusCancelled)
	require.NoError(t, repo.Update(ctx, updated))

	// the earlier snapshot must not observe the mutation
	assert.Equal(t, domain.TicketStatusValid, snapshot[0].Status)

	current, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, current.Status)
}

func TestMemoryTicketRepositoryNotFound(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Update(ctx, ticketFixture("missing", "u1", domain.TicketStatusValid))
	assert.ErrorIs(t, err, ErrNotFound)
}
