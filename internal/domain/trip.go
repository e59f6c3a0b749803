package domain

import "time"

// VehicleType enumerates the kinds of vehicles operating trips.
type VehicleType string

const (
	VehicleBus   VehicleType = "bus"
	VehicleTrain VehicleType = "train"
	VehicleFerry VehicleType = "ferry"
)

// TripStop describes one endpoint of a trip.
type TripStop struct {
	City    string
	Station string
	Time    time.Time
}

// Trip is an immutable scheduled departure/arrival record with route and pricing.
// Trips are sourced from the carrier catalog and never mutated by this service.
type Trip struct {
	ID         string
	Departure  TripStop
	Arrival    TripStop
	Company    string
	Vehicle    VehicleType
	Duration   time.Duration
	PriceCents int64
}
