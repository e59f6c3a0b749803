package repository

import (
	"context"
	"sync"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// SeatInventory tracks seat capacity per trip through the reservation state
// machine available -> held -> booked. Hold and Book are guarded by a single
// writer lock so two concurrent bookings cannot take the same seat.
type SeatInventory interface {
	ListByTrip(ctx context.Context, tripID string) ([]domain.Seat, error)
	Hold(ctx context.Context, tripID, seatID string) (*domain.Seat, error)
	Book(ctx context.Context, tripID, seatID string) error
	Release(ctx context.Context, tripID, seatID string) error
}

type memorySeatInventory struct {
	mu    sync.Mutex
	seats map[string]map[string]*domain.Seat // tripID -> seatID -> seat
	order map[string][]string
}

// NewMemorySeatInventory builds an inventory over a fixed seat map.
func NewMemorySeatInventory(seats []domain.Seat) SeatInventory {
	inv := &memorySeatInventory{
		seats: make(map[string]map[string]*domain.Seat),
		order: make(map[string][]string),
	}
	for i := range seats {
		seat := seats[i]
		if inv.seats[seat.TripID] == nil {
			inv.seats[seat.TripID] = make(map[string]*domain.Seat)
		}
		inv.seats[seat.TripID][seat.ID] = &seat
		inv.order[seat.TripID] = append(inv.order[seat.TripID], seat.ID)
	}
	return inv
}

func (inv *memorySeatInventory) ListByTrip(_ context.Context, tripID string) ([]domain.Seat, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	ids, ok := inv.order[tripID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]domain.Seat, 0, len(ids))
	for _, id := range ids {
		result = append(result, *inv.seats[tripID][id])
	}
	return result, nil
}

func (inv *memorySeatInventory) Hold(_ context.Context, tripID, seatID string) (*domain.Seat, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	seat, err := inv.get(tripID, seatID)
	if err != nil {
		return nil, err
	}
	if seat.Status != domain.SeatStatusAvailable {
		return nil, ErrSeatUnavailable
	}
	seat.Status = domain.SeatStatusHeld
	held := *seat
	return &held, nil
}

func (inv *memorySeatInventory) Book(_ context.Context, tripID, seatID string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	seat, err := inv.get(tripID, seatID)
	if err != nil {
		return err
	}
	if seat.Status != domain.SeatStatusHeld {
		return ErrSeatUnavailable
	}
	seat.Status = domain.SeatStatusBooked
	return nil
}

func (inv *memorySeatInventory) Release(_ context.Context, tripID, seatID string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	seat, err := inv.get(tripID, seatID)
	if err != nil {
		return err
	}
	if seat.Status == domain.SeatStatusHeld {
		seat.Status = domain.SeatStatusAvailable
	}
	return nil
}

func (inv *memorySeatInventory) get(tripID, seatID string) (*domain.Seat, error) {
	trip, ok := inv.seats[tripID]
	if !ok {
		return nil, ErrNotFound
	}
	seat, ok := trip[seatID]
	if !ok {
		return nil, ErrNotFound
	}
	return seat, nil
}
