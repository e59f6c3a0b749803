package repository

import (
	"context"
	"sync"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// NotificationFeed is the sink for generated notifications. Entries are kept
// newest-first for the app feed.
type NotificationFeed interface {
	Append(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type memoryNotificationFeed struct {
	mu      sync.RWMutex
	entries []domain.Notification
}

// NewMemoryNotificationFeed instantiates an empty feed.
func NewMemoryNotificationFeed() NotificationFeed {
	return &memoryNotificationFeed{}
}

func (f *memoryNotificationFeed) Append(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *notification)
	return nil
}

func (f *memoryNotificationFeed) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]domain.Notification, 0)
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			result = append(result, f.entries[i])
		}
	}
	return result, nil
}

func (f *memoryNotificationFeed) MarkRead(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == userID {
			f.entries[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (f *memoryNotificationFeed) MarkAllRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].UserID == userID {
			f.entries[i].Read = true
		}
	}
	return nil
}
