package events

import (
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketCancelled   EventType = "ticket_cancelled"
	EventTicketTransferred EventType = "ticket_transferred"
	EventReminderDue       EventType = "reminder_due"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TripSnapshot carries the trip fields notification templates need, captured
// by the emitter so handlers never re-resolve the catalog.
type TripSnapshot struct {
	TripID        string             `json:"trip_id"`
	DepartureCity string             `json:"departure_city"`
	ArrivalCity   string             `json:"arrival_city"`
	Vehicle       domain.VehicleType `json:"vehicle"`
	TravelDate    time.Time          `json:"travel_date"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Trip          TripSnapshot    `json:"trip"`
	SeatNumber    string          `json:"seat_number"`
	PassengerName string          `json:"passenger_name"`
	TripType      domain.TripType `json:"trip_type"`
}

// TicketCancelledPayload payload.
type TicketCancelledPayload struct {
	Trip      TripSnapshot        `json:"trip"`
	OldStatus domain.TicketStatus `json:"old_status"`
}

// TicketTransferredPayload payload.
type TicketTransferredPayload struct {
	Trip            TripSnapshot `json:"trip"`
	FromUserID      string       `json:"from_user_id"`
	RecipientUserID string       `json:"recipient_user_id"`
}

// ReminderHorizon is the lead time, in days, before travel at which a
// reminder fires.
type ReminderHorizon int

const (
	HorizonTomorrow ReminderHorizon = 1
	HorizonWeek     ReminderHorizon = 7
)

// ReminderDuePayload payload.
type ReminderDuePayload struct {
	Trip    TripSnapshot    `json:"trip"`
	Horizon ReminderHorizon `json:"horizon"`
}
