package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/repository"
)

// NotificationService renders ticket lifecycle events into feed entries.
// Delivery is fire-and-forget: a failed append is logged and never
// surfaced to the operation that caused the event.
type NotificationService struct {
	feed   repository.NotificationFeed
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(feed repository.NotificationFeed, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{feed: feed, logger: logger}
}

// RegisterHandlers subscribes to ticket lifecycle events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	dispatcher.Subscribe(events.EventTicketCancelled, n.handleTicketCancelled)
	dispatcher.Subscribe(events.EventTicketTransferred, n.handleTicketTransferred)
	dispatcher.Subscribe(events.EventReminderDue, n.handleReminderDue)
}

// ListForUser returns the user's feed, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return n.feed.ListByUser(ctx, userID)
}

// MarkRead flags a single entry as read.
func (n *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return n.feed.MarkRead(ctx, userID, id)
}

// MarkAllRead flags the whole feed as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return n.feed.MarkAllRead(ctx, userID)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.append(ctx, event, domain.NotificationSuccess, "Ticket confirmed",
		fmt.Sprintf("Your %s trip from %s to %s on %s is booked. Seats: %s.",
			payload.Trip.Vehicle, payload.Trip.DepartureCity, payload.Trip.ArrivalCity,
			formatTravelDate(payload.Trip.TravelDate), payload.SeatNumber))
	return nil
}

func (n *NotificationService) handleTicketCancelled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCancelledPayload)
	if !ok {
		return nil
	}
	n.append(ctx, event, domain.NotificationWarning, "Ticket cancelled",
		fmt.Sprintf("Your trip from %s to %s on %s has been cancelled.",
			payload.Trip.DepartureCity, payload.Trip.ArrivalCity,
			formatTravelDate(payload.Trip.TravelDate)))
	return nil
}

func (n *NotificationService) handleTicketTransferred(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketTransferredPayload)
	if !ok {
		return nil
	}
	n.append(ctx, event, domain.NotificationInfo, "Ticket updated",
		fmt.Sprintf("A ticket for the trip from %s to %s on %s was transferred to your account.",
			payload.Trip.DepartureCity, payload.Trip.ArrivalCity,
			formatTravelDate(payload.Trip.TravelDate)))
	return nil
}

func (n *NotificationService) handleReminderDue(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReminderDuePayload)
	if !ok {
		return nil
	}
	var title, message string
	switch payload.Horizon {
	case events.HorizonTomorrow:
		title = "Travel tomorrow"
		message = fmt.Sprintf("Your trip from %s to %s departs tomorrow at %s.",
			payload.Trip.DepartureCity, payload.Trip.ArrivalCity,
			payload.Trip.TravelDate.Format("15:04"))
	case events.HorizonWeek:
		title = "Travel in one week"
		message = fmt.Sprintf("Your trip from %s to %s departs in one week, on %s.",
			payload.Trip.DepartureCity, payload.Trip.ArrivalCity,
			formatTravelDate(payload.Trip.TravelDate))
	default:
		return nil
	}
	n.append(ctx, event, domain.NotificationInfo, title, message)
	return nil
}

func (n *NotificationService) append(ctx context.Context, event events.Event, kind domain.NotificationType, title, message string) {
	ticketID := event.TicketID
	entry := &domain.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      kind,
		TicketID:  &ticketID,
		UserID:    event.UserID,
		CreatedAt: event.Timestamp,
	}
	if err := n.feed.Append(ctx, entry); err != nil {
		n.logger.Warn("notification append failed",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
		return
	}
	n.logger.Info("notification emitted",
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("user_id", event.UserID))
}

func formatTravelDate(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006 at 15:04")
}
