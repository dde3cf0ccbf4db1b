package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventHandler_Decodes(t *testing.T) {
	want := BookingEvent{Type: EventBookingCreated, BookingID: 7, Email: "fan@example.com", Status: "pending"}
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	var got BookingEvent
	handler := EventHandler(zap.NewNop(), func(_ context.Context, e BookingEvent) error {
		got = e
		return nil
	})

	require.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))
	assert.Equal(t, want, got)
}

func TestEventHandler_SkipsGarbage(t *testing.T) {
	called := false
	handler := EventHandler(zap.NewNop(), func(context.Context, BookingEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("{not json")}))
	assert.False(t, called)
}

func TestEventHandler_PropagatesFailure(t *testing.T) {
	payload, _ := json.Marshal(BookingEvent{Type: EventBookingCancelled})
	handler := EventHandler(zap.NewNop(), func(context.Context, BookingEvent) error {
		return errors.New("smtp down")
	})

	assert.EqualError(t, handler(context.Background(), kafka.Message{Value: payload}), "smtp down")
}
