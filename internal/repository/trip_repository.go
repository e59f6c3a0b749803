package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// TripFilter captures trip search parameters.
type TripFilter struct {
	FromCity *string
	ToCity   *string
	Date     *time.Time
	Vehicle  *domain.VehicleType
}

// TripCatalog resolves trips from the carrier backend. The catalog is
// read-only: trips are never created or mutated through this service.
type TripCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	Search(ctx context.Context, filter TripFilter) ([]domain.Trip, error)
}

type memoryTripCatalog struct {
	mu    sync.RWMutex
	trips []domain.Trip
	byID  map[string]int
}

// NewMemoryTripCatalog builds a catalog over a fixed set of trips.
func NewMemoryTripCatalog(trips []domain.Trip) TripCatalog {
	byID := make(map[string]int, len(trips))
	for i, trip := range trips {
		byID[trip.ID] = i
	}
	return &memoryTripCatalog{trips: trips, byID: byID}
}

func (c *memoryTripCatalog) GetByID(_ context.Context, id string) (*domain.Trip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	trip := c.trips[idx]
	return &trip, nil
}

func (c *memoryTripCatalog) Search(_ context.Context, filter TripFilter) ([]domain.Trip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]domain.Trip, 0, len(c.trips))
	for _, trip := range c.trips {
		if filter.FromCity != nil && !strings.EqualFold(trip.Departure.City, *filter.FromCity) {
			continue
		}
		if filter.ToCity != nil && !strings.EqualFold(trip.Arrival.City, *filter.ToCity) {
			continue
		}
		if filter.Date != nil {
			y1, m1, d1 := trip.Departure.Time.Date()
			y2, m2, d2 := filter.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		if filter.Vehicle != nil && trip.Vehicle != *filter.Vehicle {
			continue
		}
		result = append(result, trip)
	}
	return result, nil
}
