package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/repository"
)

// Reminder pairs a ticket with the horizon it crossed.
type Reminder struct {
	Ticket  domain.Ticket
	Horizon events.ReminderHorizon
}

// ScanTickets derives due reminders from the ticket set at the given
// instant. Pure: tickets are not mutated and the same input always yields
// the same reminders. Only valid and upcoming tickets participate.
func ScanTickets(tickets []domain.Ticket, now time.Time) []Reminder {
	reminders := make([]Reminder, 0)
	for _, ticket := range tickets {
		if ticket.Status != domain.TicketStatusValid && ticket.Status != domain.TicketStatusUpcoming {
			continue
		}
		switch daysUntil(ticket.TravelDate, now) {
		case int(events.HorizonTomorrow):
			reminders = append(reminders, Reminder{Ticket: ticket, Horizon: events.HorizonTomorrow})
		case int(events.HorizonWeek):
			reminders = append(reminders, Reminder{Ticket: ticket, Horizon: events.HorizonWeek})
		}
	}
	return reminders
}

// daysUntil is the number of whole or partial days between now and the
// travel date: ceil((travelDate - now) / 24h).
func daysUntil(travelDate, now time.Time) int {
	return int(math.Ceil(travelDate.Sub(now).Hours() / 24))
}

// ReminderService turns scan results into reminder events, deduplicating by
// (ticket, horizon) so a same-day re-scan does not notify twice.
type ReminderService struct {
	log        repository.ReminderLog
	trips      repository.TripCatalog
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ReminderDependencies bundles collaborators for the reminder service.
type ReminderDependencies struct {
	ReminderLog repository.ReminderLog
	TripCatalog repository.TripCatalog
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Now         func() time.Time
}

// NewReminderService constructs the service.
func NewReminderService(deps ReminderDependencies) *ReminderService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		log:        deps.ReminderLog,
		trips:      deps.TripCatalog,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// Notify scans the given tickets and emits a reminder event for each ticket
// crossing a horizon for the first time. Emission is fire-and-forget.
func (s *ReminderService) Notify(ctx context.Context, tickets []domain.Ticket) {
	now := s.now()
	for _, reminder := range ScanTickets(tickets, now) {
		first, err := s.log.MarkIfFirst(ctx, reminder.Ticket.ID, int(reminder.Horizon))
		if err != nil {
			s.logger.Warn("reminder log unavailable",
				zap.String("ticket_id", reminder.Ticket.ID), zap.Error(err))
			continue
		}
		if !first {
			continue
		}
		snapshot := events.TripSnapshot{TripID: reminder.Ticket.TripID, TravelDate: reminder.Ticket.TravelDate}
		if trip, err := s.trips.GetByID(ctx, reminder.Ticket.TripID); err == nil {
			snapshot = tripSnapshot(trip, reminder.Ticket.TravelDate)
		}
		if s.dispatcher == nil {
			continue
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReminderDue,
			TicketID:  reminder.Ticket.ID,
			UserID:    reminder.Ticket.UserID,
			Timestamp: now,
			Payload: events.ReminderDuePayload{
				Trip:    snapshot,
				Horizon: reminder.Horizon,
			},
		})
	}
}
