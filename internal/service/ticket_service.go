package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/repository"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

// TicketService owns the authoritative set of tickets and coordinates
// booking, cancellation, transfer and the load-time status refresh.
type TicketService struct {
	tickets    repository.TicketRepository
	trips      repository.TripCatalog
	seats      repository.SeatInventory
	reminders  *ReminderService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	TripCatalog   repository.TripCatalog
	SeatInventory repository.SeatInventory
	Reminders     *ReminderService
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Now           func() time.Time
}

// TicketCreateInput describes a booking submission.
type TicketCreateInput struct {
	TripID              string
	UserID              string
	Seats               []string
	TripType            domain.TripType
	Status              domain.TicketStatus
	PassengerName       string
	PassengerEmail      string
	PassengerPhone      string
	IsForSelf           bool
	RelationToPassenger string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		trips:      deps.TripCatalog,
		seats:      deps.SeatInventory,
		reminders:  deps.Reminders,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// CreateTicket books the given seats on a trip and appends the resulting
// ticket to the store. The trip must resolve and every seat must be
// available; otherwise no ticket is produced.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	trip, err := s.trips.GetByID(ctx, input.TripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("trip", map[string]any{"trip_id": input.TripID})
		}
		return nil, err
	}

	held, err := s.holdSeats(ctx, trip.ID, input.Seats)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ticket := &domain.Ticket{
		ID:             generateTicketID(),
		TripID:         trip.ID,
		UserID:         input.UserID,
		PassengerName:  strings.TrimSpace(input.PassengerName),
		PassengerEmail: strings.TrimSpace(input.PassengerEmail),
		PassengerPhone: strings.TrimSpace(input.PassengerPhone),
		SeatNumber:     strings.Join(input.Seats, ", "),
		TripType:       input.TripType,
		PurchaseDate:   now,
		TravelDate:     trip.Departure.Time,
		Status:         input.Status,
	}
	ticket.QRCode = "qr-" + ticket.ID

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.releaseSeats(ctx, trip.ID, held)
		return nil, err
	}
	for _, seatID := range held {
		if err := s.seats.Book(ctx, trip.ID, seatID); err != nil {
			s.logger.Warn("seat booking after ticket creation failed",
				zap.String("ticket_id", ticket.ID), zap.String("seat_id", seatID), zap.Error(err))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		UserID:   ticket.UserID,
		Payload: events.TicketCreatedPayload{
			Trip:          tripSnapshot(trip, ticket.TravelDate),
			SeatNumber:    ticket.SeatNumber,
			PassengerName: ticket.PassengerName,
			TripType:      ticket.TripType,
		},
	})
	return ticket, nil
}

// ListTickets returns the user's tickets in insertion order. Tickets whose
// travel date has passed while still valid or upcoming are rewritten to
// past first, then the reminder scan runs against the refreshed set.
func (s *TicketService) ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	refreshed, err := s.refreshPast(ctx, tickets)
	if err != nil {
		return nil, err
	}
	if s.reminders != nil {
		s.reminders.Notify(ctx, refreshed)
	}
	return refreshed, nil
}

// ListTicketsByStatus returns the subsequence of the user's tickets with the
// given status, in insertion order.
func (s *TicketService) ListTicketsByStatus(ctx context.Context, userID string, status domain.TicketStatus) ([]domain.Ticket, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": status})
	}
	return s.tickets.ListByUserAndStatus(ctx, userID, status)
}

// GetTicket returns a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// CancelTicket moves a ticket to cancelled. Cancelling an already cancelled
// ticket is a no-op success; tickets whose travel is already concluded
// (past, used) cannot be cancelled.
func (s *TicketService) CancelTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusCancelled {
		return ticket, nil
	}
	if !domain.CanTransition(ticket.Status, domain.TicketStatusCancelled) {
		return nil, apperrors.NewConflict("ticket cannot be cancelled in its current status",
			map[string]any{"status": ticket.Status})
	}
	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusCancelled
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCancelled,
		TicketID: ticket.ID,
		UserID:   ticket.UserID,
		Payload: events.TicketCancelledPayload{
			Trip:      s.snapshotFor(ctx, ticket),
			OldStatus: oldStatus,
		},
	})
	return ticket, nil
}

// TransferTicket reassigns ownership to another user. Only the owner changes;
// every other field, including status, is untouched.
func (s *TicketService) TransferTicket(ctx context.Context, id, recipientUserID string) (*domain.Ticket, error) {
	recipientUserID = strings.TrimSpace(recipientUserID)
	if recipientUserID == "" {
		return nil, apperrors.NewValidationError("recipient user id required", nil)
	}
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID == recipientUserID {
		return nil, apperrors.NewValidationError("ticket already belongs to this user", nil)
	}
	fromUserID := ticket.UserID
	ticket.UserID = recipientUserID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketTransferred,
		TicketID: ticket.ID,
		UserID:   recipientUserID,
		Payload: events.TicketTransferredPayload{
			Trip:            s.snapshotFor(ctx, ticket),
			FromUserID:      fromUserID,
			RecipientUserID: recipientUserID,
		},
	})
	return ticket, nil
}

// RefreshAndRemind runs the past-status refresh and the reminder scan over
// every stored ticket. The background worker calls this periodically.
func (s *TicketService) RefreshAndRemind(ctx context.Context) error {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return err
	}
	refreshed, err := s.refreshPast(ctx, tickets)
	if err != nil {
		return err
	}
	if s.reminders != nil {
		s.reminders.Notify(ctx, refreshed)
	}
	return nil
}

// refreshPast rewrites valid/upcoming tickets whose travel date is strictly
// before now to past. Idempotent: already-past tickets are untouched.
func (s *TicketService) refreshPast(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error) {
	now := s.now()
	for i := range tickets {
		if tickets[i].Status != domain.TicketStatusValid && tickets[i].Status != domain.TicketStatusUpcoming {
			continue
		}
		if !tickets[i].TravelDate.Before(now) {
			continue
		}
		tickets[i].Status = domain.TicketStatusPast
		if err := s.tickets.Update(ctx, &tickets[i]); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (s *TicketService) holdSeats(ctx context.Context, tripID string, seatIDs []string) ([]string, error) {
	held := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		if _, err := s.seats.Hold(ctx, tripID, seatID); err != nil {
			s.releaseSeats(ctx, tripID, held)
			switch {
			case errors.Is(err, repository.ErrSeatUnavailable):
				return nil, apperrors.NewConflict("seat no longer available", map[string]any{"seat": seatID})
			case errors.Is(err, repository.ErrNotFound):
				return nil, apperrors.NewNotFound("seat", map[string]any{"seat": seatID})
			default:
				return nil, err
			}
		}
		held = append(held, seatID)
	}
	return held, nil
}

func (s *TicketService) releaseSeats(ctx context.Context, tripID string, seatIDs []string) {
	for _, seatID := range seatIDs {
		if err := s.seats.Release(ctx, tripID, seatID); err != nil {
			s.logger.Warn("seat release failed", zap.String("seat_id", seatID), zap.Error(err))
		}
	}
}

// snapshotFor resolves the ticket's trip for notification templates. The
// catalog lookup is soft: a vanished trip yields an id-only snapshot.
func (s *TicketService) snapshotFor(ctx context.Context, ticket *domain.Ticket) events.TripSnapshot {
	trip, err := s.trips.GetByID(ctx, ticket.TripID)
	if err != nil {
		return events.TripSnapshot{TripID: ticket.TripID, TravelDate: ticket.TravelDate}
	}
	return tripSnapshot(trip, ticket.TravelDate)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateCreateInput(input *TicketCreateInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.TripID) == "" {
		details["trip_id"] = "required"
	}
	if strings.TrimSpace(input.UserID) == "" {
		details["user_id"] = "required"
	}
	if len(input.Seats) == 0 {
		details["seats"] = "at least one seat required"
	}
	if strings.TrimSpace(input.PassengerName) == "" {
		details["passenger_name"] = "required"
	}
	if !input.IsForSelf && strings.TrimSpace(input.RelationToPassenger) == "" {
		details["relation_to_passenger"] = "required when booking for someone else"
	}
	if input.TripType == "" {
		input.TripType = domain.TripTypeOneWay
	}
	if input.TripType != domain.TripTypeOneWay && input.TripType != domain.TripTypeRoundTrip {
		details["trip_type"] = "must be one-way or round-trip"
	}
	if input.Status == "" {
		input.Status = domain.TicketStatusValid
	}
	if input.Status != domain.TicketStatusValid && input.Status != domain.TicketStatusUpcoming {
		details["status"] = "new tickets must start valid or upcoming"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid booking submission", details)
	}
	return nil
}

func generateTicketID() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func tripSnapshot(trip *domain.Trip, travelDate time.Time) events.TripSnapshot {
	return events.TripSnapshot{
		TripID:        trip.ID,
		DepartureCity: trip.Departure.City,
		ArrivalCity:   trip.Arrival.City,
		Vehicle:       trip.Vehicle,
		TravelDate:    travelDate,
	}
}
