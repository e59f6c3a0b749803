package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/repository"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

type ticketFixture struct {
	now     time.Time
	clock   *time.Time
	tickets repository.TicketRepository
	seats   repository.SeatInventory
	feed    repository.NotificationFeed
	svc     *TicketService
}

// newTicketFixture wires a ticket service over in-memory collaborators with
// a single trip BF101 departing at the given instant.
func newTicketFixture(t *testing.T, departure, now time.Time) *ticketFixture {
	t.Helper()

	trips := []domain.Trip{{
		ID:         "BF101",
		Departure:  domain.TripStop{City: "Paris", Station: "Gare de Bercy", Time: departure},
		Arrival:    domain.TripStop{City: "Lyon", Station: "Perrache", Time: departure.Add(4 * time.Hour)},
		Company:    "FlixRoute",
		Vehicle:    domain.VehicleBus,
		Duration:   4 * time.Hour,
		PriceCents: 2499,
	}}
	seats := []domain.Seat{
		{ID: "A1", TripID: "BF101", Name: "A1", Type: domain.SeatTypeWindow, PriceCents: 2499, Status: domain.SeatStatusAvailable},
		{ID: "A2", TripID: "BF101", Name: "A2", Type: domain.SeatTypeStandard, PriceCents: 2499, Status: domain.SeatStatusAvailable},
		{ID: "A3", TripID: "BF101", Name: "A3", Type: domain.SeatTypeStandard, PriceCents: 2499, Status: domain.SeatStatusAvailable},
	}

	clock := now
	catalog := repository.NewMemoryTripCatalog(trips)
	inventory := repository.NewMemorySeatInventory(seats)
	ticketRepo := repository.NewMemoryTicketRepository()
	feed := repository.NewMemoryNotificationFeed()

	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(feed, nil).RegisterHandlers(dispatcher)

	reminders := NewReminderService(ReminderDependencies{
		ReminderLog: repository.NewMemoryReminderLog(),
		TripCatalog: catalog,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return clock },
	})
	svc := NewTicketService(TicketDependencies{
		TicketRepo:    ticketRepo,
		TripCatalog:   catalog,
		SeatInventory: inventory,
		Reminders:     reminders,
		Dispatcher:    dispatcher,
		Now:           func() time.Time { return clock },
	})

	return &ticketFixture{now: now, clock: &clock, tickets: ticketRepo, seats: inventory, feed: feed, svc: svc}
}

func (f *ticketFixture) createInput(seats ...string) TicketCreateInput {
	return TicketCreateInput{
		TripID:        "BF101",
		UserID:        "u1",
		Seats:         seats,
		TripType:      domain.TripTypeOneWay,
		PassengerName: "Jean Dupont",
		IsForSelf:     true,
	}
}

func TestCreateTicketJoinsSeatsAndDerivesQRCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	ticket, err := f.svc.CreateTicket(context.Background(), f.createInput("A1", "A2"))
	require.NoError(t, err)

	assert.Equal(t, "A1, A2", ticket.SeatNumber)
	assert.Equal(t, "qr-"+ticket.ID, ticket.QRCode)
	assert.True(t, strings.HasPrefix(ticket.ID, "TKT-"))
	assert.Equal(t, domain.TicketStatusValid, ticket.Status)
	assert.Equal(t, now, ticket.PurchaseDate)
	assert.Equal(t, now.Add(48*time.Hour), ticket.TravelDate)

	// the booking marks both seats as booked
	seats, err := f.seats.ListByTrip(context.Background(), "BF101")
	require.NoError(t, err)
	assert.Equal(t, domain.SeatStatusBooked, seats[0].Status)
	assert.Equal(t, domain.SeatStatusBooked, seats[1].Status)
	assert.Equal(t, domain.SeatStatusAvailable, seats[2].Status)

	// a created notification was emitted for the new ticket
	entries, err := f.feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ticket confirmed", entries[0].Title)
	require.NotNil(t, entries[0].TicketID)
	assert.Equal(t, ticket.ID, *entries[0].TicketID)
}

func TestCreateTicketUnknownTripLeavesStoreUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	input := f.createInput("A1")
	input.TripID = "UNKNOWN"
	ticket, err := f.svc.CreateTicket(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, ticket)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	all, err := f.tickets.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	entries, err := f.feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateTicketValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	tests := []struct {
		name   string
		mutate func(*TicketCreateInput)
	}{
		{"no seats", func(in *TicketCreateInput) { in.Seats = nil }},
		{"no passenger name", func(in *TicketCreateInput) { in.PassengerName = " " }},
		{"missing relation for third party", func(in *TicketCreateInput) { in.IsForSelf = false }},
		{"bad trip type", func(in *TicketCreateInput) { in.TripType = "circular" }},
		{"bad initial status", func(in *TicketCreateInput) { in.Status = domain.TicketStatusPast }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.createInput("A1")
			tt.mutate(&input)
			_, err := f.svc.CreateTicket(context.Background(), input)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}

	all, err := f.tickets.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateTicketSeatConflict(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	_, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	// second booking wants A2 and the already-taken A1
	_, err = f.svc.CreateTicket(context.Background(), f.createInput("A2", "A1"))
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// the failed booking released its hold on A2
	seats, err := f.seats.ListByTrip(context.Background(), "BF101")
	require.NoError(t, err)
	assert.Equal(t, domain.SeatStatusBooked, seats[0].Status)
	assert.Equal(t, domain.SeatStatusAvailable, seats[1].Status)

	all, err := f.tickets.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListTicketsRewritesDepartedToPast(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(2*time.Hour), now)

	ticket, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	// travel date passes
	*f.clock = now.Add(3 * time.Hour)

	listed, err := f.svc.ListTickets(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.TicketStatusPast, listed[0].Status)

	// idempotent on re-load
	listed, err = f.svc.ListTickets(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPast, listed[0].Status)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPast, stored.Status)
}

func TestListTicketsEmitsTomorrowReminderOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// departure in 23 hours: ceil(23h/24h) == 1 day out
	f := newTicketFixture(t, now.Add(23*time.Hour), now)

	_, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	_, err = f.svc.ListTickets(context.Background(), "u1")
	require.NoError(t, err)
	_, err = f.svc.ListTickets(context.Background(), "u1")
	require.NoError(t, err)

	entries, err := f.feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)

	reminderCount := 0
	for _, entry := range entries {
		if entry.Title == "Travel tomorrow" {
			reminderCount++
		}
	}
	assert.Equal(t, 1, reminderCount)
}

func TestCancelTicketTwiceIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	ticket, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	first, err := f.svc.CancelTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, first.Status)

	second, err := f.svc.CancelTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, second.Status)

	// only the first cancel notifies
	entries, err := f.feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	cancelCount := 0
	for _, entry := range entries {
		if entry.Title == "Ticket cancelled" {
			cancelCount++
		}
	}
	assert.Equal(t, 1, cancelCount)
}

func TestCancelTicketRejectsConcludedTravel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(2*time.Hour), now)

	ticket, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	*f.clock = now.Add(3 * time.Hour)
	_, err = f.svc.ListTickets(context.Background(), "u1")
	require.NoError(t, err)

	_, err = f.svc.CancelTicket(context.Background(), ticket.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestCancelTicketNotFoundLeavesStoreUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	_, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	_, err = f.svc.CancelTicket(context.Background(), "TKT-MISSING")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	all, err := f.tickets.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.TicketStatusValid, all[0].Status)
}

func TestTransferTicketChangesOnlyOwner(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	created, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	transferred, err := f.svc.TransferTicket(context.Background(), created.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2", transferred.UserID)

	expected := *created
	expected.UserID = "u2"
	assert.Equal(t, &expected, transferred)

	// the recipient gets the transfer notification
	entries, err := f.feed.ListByUser(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ticket updated", entries[0].Title)
}

func TestTransferTicketValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	created, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)

	var domainErr *apperrors.DomainError

	_, err = f.svc.TransferTicket(context.Background(), created.ID, "")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = f.svc.TransferTicket(context.Background(), created.ID, "u1")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = f.svc.TransferTicket(context.Background(), "TKT-MISSING", "u2")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListTicketsByStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTicketFixture(t, now.Add(48*time.Hour), now)

	first, err := f.svc.CreateTicket(context.Background(), f.createInput("A1"))
	require.NoError(t, err)
	second, err := f.svc.CreateTicket(context.Background(), f.createInput("A2"))
	require.NoError(t, err)

	_, err = f.svc.CancelTicket(context.Background(), first.ID)
	require.NoError(t, err)

	valid, err := f.svc.ListTicketsByStatus(context.Background(), "u1", domain.TicketStatusValid)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, second.ID, valid[0].ID)

	cancelled, err := f.svc.ListTicketsByStatus(context.Background(), "u1", domain.TicketStatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)

	_, err = f.svc.ListTicketsByStatus(context.Background(), "u1", "expired")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
