package dto

import (
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// TripStopResponse is one endpoint of a trip.
type TripStopResponse struct {
	City    string    `json:"city"`
	Station string    `json:"station"`
	Time    time.Time `json:"time"`
}

// TripResponse represents a catalog trip.
type TripResponse struct {
	ID              string             `json:"id"`
	Departure       TripStopResponse   `json:"departure"`
	Arrival         TripStopResponse   `json:"arrival"`
	Company         string             `json:"company"`
	Vehicle         domain.VehicleType `json:"vehicle"`
	DurationMinutes int                `json:"duration_minutes"`
	PriceCents      int64              `json:"price_cents"`
}

// SeatResponse represents a seat on the seat map.
type SeatResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       domain.SeatType   `json:"type"`
	PriceCents int64             `json:"price_cents"`
	Status     domain.SeatStatus `json:"status"`
}

// TripFromDomain maps a domain trip to its response shape.
func TripFromDomain(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:              trip.ID,
		Departure:       TripStopResponse{City: trip.Departure.City, Station: trip.Departure.Station, Time: trip.Departure.Time},
		Arrival:         TripStopResponse{City: trip.Arrival.City, Station: trip.Arrival.Station, Time: trip.Arrival.Time},
		Company:         trip.Company,
		Vehicle:         trip.Vehicle,
		DurationMinutes: int(trip.Duration.Minutes()),
		PriceCents:      trip.PriceCents,
	}
}

// SeatFromDomain maps a domain seat to its response shape.
func SeatFromDomain(seat domain.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID,
		Name:       seat.Name,
		Type:       seat.Type,
		PriceCents: seat.PriceCents,
		Status:     seat.Status,
	}
}
