package dto

import (
	"time"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// NotificationResponse represents a feed entry.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	Read      bool                    `json:"read"`
	TicketID  *string                 `json:"ticket_id,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationFromDomain maps a feed entry to its response shape.
func NotificationFromDomain(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		TicketID:  n.TicketID,
		CreatedAt: n.CreatedAt,
	}
}
