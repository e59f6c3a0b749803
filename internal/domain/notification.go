package domain

import "time"

// NotificationType maps to the severity styling shown in the app feed.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a feed entry produced by ticket lifecycle events and
// travel-date reminders. TicketID is set when the entry correlates to a
// specific ticket.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      NotificationType
	Read      bool
	TicketID  *string
	UserID    string
	CreatedAt time.Time
}
