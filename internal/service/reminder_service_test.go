package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/repository"
)

func reminderTicket(id string, status domain.TicketStatus, travelDate time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		TripID:     "BF101",
		UserID:     "u1",
		Status:     status,
		TravelDate: travelDate,
	}
}

func TestScanTicketsHorizons(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		travel  time.Time
		status  domain.TicketStatus
		horizon events.ReminderHorizon
		want    int
	}{
		// 23 hours ahead: ceil(23/24) == 1
		{"tomorrow by partial day", now.Add(23 * time.Hour), domain.TicketStatusValid, events.HorizonTomorrow, 1},
		{"tomorrow exact", now.Add(24 * time.Hour), domain.TicketStatusValid, events.HorizonTomorrow, 1},
		{"one week", now.Add(7 * 24 * time.Hour), domain.TicketStatusValid, events.HorizonWeek, 1},
		{"six and a half days rounds to week", now.Add(6*24*time.Hour + 12*time.Hour), domain.TicketStatusValid, events.HorizonWeek, 1},
		{"two days out is silent", now.Add(48 * time.Hour), domain.TicketStatusValid, 0, 0},
		{"departed is silent", now.Add(-2 * time.Hour), domain.TicketStatusValid, 0, 0},
		{"upcoming participates", now.Add(23 * time.Hour), domain.TicketStatusUpcoming, events.HorizonTomorrow, 1},
		{"cancelled skipped", now.Add(23 * time.Hour), domain.TicketStatusCancelled, 0, 0},
		{"past skipped", now.Add(23 * time.Hour), domain.TicketStatusPast, 0, 0},
		{"paused skipped", now.Add(23 * time.Hour), domain.TicketStatusPaused, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders := ScanTickets([]domain.Ticket{reminderTicket("t1", tt.status, tt.travel)}, now)
			require.Len(t, reminders, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.horizon, reminders[0].Horizon)
				assert.Equal(t, "t1", reminders[0].Ticket.ID)
			}
		})
	}
}

func TestScanTicketsIsPure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		reminderTicket("t1", domain.TicketStatusValid, now.Add(23*time.Hour)),
		reminderTicket("t2", domain.TicketStatusValid, now.Add(7*24*time.Hour)),
		reminderTicket("t3", domain.TicketStatusCancelled, now.Add(23*time.Hour)),
	}

	first := ScanTickets(tickets, now)
	second := ScanTickets(tickets, now)

	assert.Equal(t, first, second)
	// scanning must not mutate ticket state
	assert.Equal(t, domain.TicketStatusValid, tickets[0].Status)
	assert.Equal(t, domain.TicketStatusCancelled, tickets[2].Status)
}

func TestReminderServiceDeduplicates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trips := []domain.Trip{{
		ID:        "BF101",
		Departure: domain.TripStop{City: "Paris", Station: "Bercy", Time: now.Add(23 * time.Hour)},
		Arrival:   domain.TripStop{City: "Lyon", Station: "Perrache", Time: now.Add(28 * time.Hour)},
		Vehicle:   domain.VehicleBus,
	}}

	feed := repository.NewMemoryNotificationFeed()
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(feed, nil).RegisterHandlers(dispatcher)

	svc := NewReminderService(ReminderDependencies{
		ReminderLog: repository.NewMemoryReminderLog(),
		TripCatalog: repository.NewMemoryTripCatalog(trips),
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	tickets := []domain.Ticket{reminderTicket("t1", domain.TicketStatusValid, now.Add(23*time.Hour))}
	svc.Notify(context.Background(), tickets)
	svc.Notify(context.Background(), tickets)

	entries, err := feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Travel tomorrow", entries[0].Title)
	assert.Contains(t, entries[0].Message, "Paris")
	assert.Contains(t, entries[0].Message, "Lyon")
	assert.Contains(t, entries[0].Message, now.Add(23*time.Hour).Format("15:04"))
}

func TestReminderServiceSeparateHorizonsBothFire(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trips := []domain.Trip{{
		ID:        "BF101",
		Departure: domain.TripStop{City: "Paris", Time: now.Add(7 * 24 * time.Hour)},
		Arrival:   domain.TripStop{City: "Lyon"},
		Vehicle:   domain.VehicleBus,
	}}

	feed := repository.NewMemoryNotificationFeed()
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(feed, nil).RegisterHandlers(dispatcher)

	current := now
	svc := NewReminderService(ReminderDependencies{
		ReminderLog: repository.NewMemoryReminderLog(),
		TripCatalog: repository.NewMemoryTripCatalog(trips),
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return current },
	})

	travel := now.Add(7 * 24 * time.Hour)
	tickets := []domain.Ticket{reminderTicket("t1", domain.TicketStatusValid, travel)}

	svc.Notify(context.Background(), tickets)

	// six days later the same ticket crosses the one-day horizon
	current = now.Add(6 * 24 * time.Hour)
	svc.Notify(context.Background(), tickets)

	entries, err := feed.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Travel tomorrow", entries[0].Title)
	assert.Equal(t, "Travel in one week", entries[1].Title)
}
