package repository

import (
	"context"
	"sync"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Implementations keep
// insertion order for all list operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error)
	ListByUserAndStatus(ctx context.Context, userID string, status domain.TicketStatus) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}

// memoryTicketRepository keeps the session's tickets in insertion order.
// Mutations publish a fresh slice, so snapshots handed to readers never
// change under them.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewMemoryTicketRepository instantiates an empty in-memory store.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.Ticket, len(r.tickets), len(r.tickets)+1)
	copy(next, r.tickets)
	r.tickets = append(next, *ticket)
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == ticket.ID {
			next := make([]domain.Ticket, len(r.tickets))
			copy(next, r.tickets)
			next[i] = *ticket
			r.tickets = next
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryTicketRepository) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.UserID == userID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (r *memoryTicketRepository) ListByUserAndStatus(_ context.Context, userID string, status domain.TicketStatus) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.UserID == userID && ticket.Status == status {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (r *memoryTicketRepository) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, len(r.tickets))
	copy(result, r.tickets)
	return result, nil
}
