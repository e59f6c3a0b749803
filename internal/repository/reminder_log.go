package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderLog records which (ticket, horizon) reminders have already been
// emitted, so a re-scan on the same day does not notify twice.
type ReminderLog interface {
	// MarkIfFirst records the pair and reports whether this was the first
	// time it was seen.
	MarkIfFirst(ctx context.Context, ticketID string, horizonDays int) (bool, error)
}

type memoryReminderLog struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryReminderLog instantiates an in-process reminder log.
func NewMemoryReminderLog() ReminderLog {
	return &memoryReminderLog{seen: make(map[string]struct{})}
}

func (l *memoryReminderLog) MarkIfFirst(_ context.Context, ticketID string, horizonDays int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := reminderKey(ticketID, horizonDays)
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = struct{}{}
	return true, nil
}

// redisReminderLog shares the notified set across instances. Keys expire
// after the longest horizon has safely elapsed.
type redisReminderLog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReminderLog instantiates a Redis-backed reminder log.
func NewRedisReminderLog(client *redis.Client) ReminderLog {
	return &redisReminderLog{client: client, ttl: 14 * 24 * time.Hour}
}

func (l *redisReminderLog) MarkIfFirst(ctx context.Context, ticketID string, horizonDays int) (bool, error) {
	return l.client.SetNX(ctx, reminderKey(ticketID, horizonDays), 1, l.ttl).Result()
}

func reminderKey(ticketID string, horizonDays int) string {
	return fmt.Sprintf("reminder:%s:%d", ticketID, horizonDays)
}
