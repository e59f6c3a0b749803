package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{"valid to past", TicketStatusValid, TicketStatusPast, true},
		{"valid to cancelled", TicketStatusValid, TicketStatusCancelled, true},
		{"valid to used", TicketStatusValid, TicketStatusUsed, true},
		{"upcoming to valid", TicketStatusUpcoming, TicketStatusValid, true},
		{"upcoming to cancelled", TicketStatusUpcoming, TicketStatusCancelled, true},
		{"paused to valid", TicketStatusPaused, TicketStatusValid, true},
		{"blocked to cancelled", TicketStatusBlocked, TicketStatusCancelled, true},
		{"past is terminal", TicketStatusPast, TicketStatusValid, false},
		{"past cannot cancel", TicketStatusPast, TicketStatusCancelled, false},
		{"used is terminal", TicketStatusUsed, TicketStatusCancelled, false},
		{"cancelled cannot reopen", TicketStatusCancelled, TicketStatusValid, false},
		{"valid cannot become upcoming", TicketStatusValid, TicketStatusUpcoming, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, Terminal(TicketStatusPast))
	assert.True(t, Terminal(TicketStatusUsed))
	assert.True(t, Terminal(TicketStatusCancelled))
	assert.False(t, Terminal(TicketStatusValid))
	assert.False(t, Terminal(TicketStatusUpcoming))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []TicketStatus{
		TicketStatusValid, TicketStatusUpcoming, TicketStatusPaused,
		TicketStatusBlocked, TicketStatusUsed, TicketStatusPast, TicketStatusCancelled,
	} {
		assert.True(t, ValidStatus(status), string(status))
	}
	assert.False(t, ValidStatus("expired"))
	assert.False(t, ValidStatus(""))
}
