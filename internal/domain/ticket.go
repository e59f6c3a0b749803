package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "valid"
	TicketStatusUpcoming  TicketStatus = "upcoming"
	TicketStatusPaused    TicketStatus = "paused"
	TicketStatusBlocked   TicketStatus = "blocked"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusPast      TicketStatus = "past"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// TripType distinguishes single and return bookings.
type TripType string

const (
	TripTypeOneWay    TripType = "one-way"
	TripTypeRoundTrip TripType = "round-trip"
)

// Ticket is a booked seat (or seats) on a specific trip, owned by a user.
// TravelDate is a snapshot of the trip departure taken at creation time; it
// is never re-derived if the underlying trip changes.
type Ticket struct {
	ID             string
	TripID         string
	UserID         string
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	SeatNumber     string
	TripType       TripType
	PurchaseDate   time.Time
	TravelDate     time.Time
	QRCode         string
	Status         TicketStatus
}

// allowedTransitions is the closed transition table for ticket statuses.
// used, past and cancelled are terminal; there is no reopen path.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusValid:     {TicketStatusPast, TicketStatusUsed, TicketStatusPaused, TicketStatusBlocked, TicketStatusCancelled},
	TicketStatusUpcoming:  {TicketStatusValid, TicketStatusPast, TicketStatusCancelled},
	TicketStatusPaused:    {TicketStatusValid, TicketStatusCancelled},
	TicketStatusBlocked:   {TicketStatusCancelled},
	TicketStatusUsed:      {},
	TicketStatusPast:      {},
	TicketStatusCancelled: {},
}

// CanTransition reports whether moving from current to next is permitted.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a member of the closed status enum.
func ValidStatus(s TicketStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no transition leads out of s.
func Terminal(s TicketStatus) bool {
	return len(allowedTransitions[s]) == 0
}
