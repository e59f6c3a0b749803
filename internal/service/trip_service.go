package service

import (
	"context"
	"errors"

	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/repository"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

// TripService exposes catalog search and seat maps to the HTTP surface.
type TripService struct {
	trips repository.TripCatalog
	seats repository.SeatInventory
}

// NewTripService constructs the service.
func NewTripService(trips repository.TripCatalog, seats repository.SeatInventory) *TripService {
	return &TripService{trips: trips, seats: seats}
}

// Search returns trips matching the filter.
func (s *TripService) Search(ctx context.Context, filter repository.TripFilter) ([]domain.Trip, error) {
	return s.trips.Search(ctx, filter)
}

// GetTrip resolves a single trip.
func (s *TripService) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("trip", map[string]any{"trip_id": id})
		}
		return nil, err
	}
	return trip, nil
}

// SeatsForTrip returns the trip's seat map with live reservation status.
func (s *TripService) SeatsForTrip(ctx context.Context, tripID string) ([]domain.Seat, error) {
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	seats, err := s.seats.ListByTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Seat{}, nil
		}
		return nil, err
	}
	return seats, nil
}
