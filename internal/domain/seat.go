package domain

// SeatStatus tracks a seat through the reservation state machine.
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusHeld      SeatStatus = "held"
	SeatStatusBooked    SeatStatus = "booked"
)

// SeatType enumerates seat categories offered by carriers.
type SeatType string

const (
	SeatTypeStandard SeatType = "standard"
	SeatTypeWindow   SeatType = "window"
	SeatTypeAisle    SeatType = "aisle"
	SeatTypePremium  SeatType = "premium"
)

// Seat is an individually addressable unit of trip capacity.
type Seat struct {
	ID         string
	TripID     string
	Name       string
	Type       SeatType
	PriceCents int64
	Status     SeatStatus
}

// Available reports whether the seat can currently be held.
func (s Seat) Available() bool {
	return s.Status == SeatStatusAvailable
}
