package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribedType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "TKT-1"})
	require.NoError(t, err)
	err = d.Publish(context.Background(), Event{Type: EventTicketCancelled, TicketID: "TKT-2"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "TKT-1", got[0].TicketID)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventReminderDue, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventReminderDue, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventReminderDue})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
