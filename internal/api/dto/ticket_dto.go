package dto

import (
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	TripID              string              `json:"trip_id"`
	Seats               []string            `json:"seats"`
	TripType            domain.TripType     `json:"trip_type"`
	Status              domain.TicketStatus `json:"status,omitempty"`
	PassengerName       string              `json:"passenger_name"`
	PassengerEmail      string              `json:"passenger_email,omitempty"`
	PassengerPhone      string              `json:"passenger_phone,omitempty"`
	IsForSelf           *bool               `json:"is_for_self,omitempty"`
	RelationToPassenger string              `json:"relation_to_passenger,omitempty"`
}

// TransferTicketRequest payload.
type TransferTicketRequest struct {
	RecipientUserID string `json:"recipient_user_id"`
}

// TicketResponse represents a ticket in API responses.
type TicketResponse struct {
	ID             string              `json:"id"`
	TripID         string              `json:"trip_id"`
	UserID         string              `json:"user_id"`
	PassengerName  string              `json:"passenger_name"`
	PassengerEmail string              `json:"passenger_email,omitempty"`
	PassengerPhone string              `json:"passenger_phone,omitempty"`
	SeatNumber     string              `json:"seat_number"`
	TripType       domain.TripType     `json:"trip_type"`
	PurchaseDate   time.Time           `json:"purchase_date"`
	TravelDate     time.Time           `json:"travel_date"`
	QRCode         string              `json:"qr_code"`
	Status         domain.TicketStatus `json:"status"`
}

// TicketFromDomain maps a domain ticket to its response shape.
func TicketFromDomain(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		TripID:         ticket.TripID,
		UserID:         ticket.UserID,
		PassengerName:  ticket.PassengerName,
		PassengerEmail: ticket.PassengerEmail,
		PassengerPhone: ticket.PassengerPhone,
		SeatNumber:     ticket.SeatNumber,
		TripType:       ticket.TripType,
		PurchaseDate:   ticket.PurchaseDate,
		TravelDate:     ticket.TravelDate,
		QRCode:         ticket.QRCode,
		Status:         ticket.Status,
	}
}
