package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPayloadRoundTrip(t *testing.T) {
	event := NewEventPayload("products", "4", ActionUpdate)
	assert.NotZero(t, event.Timestamp)

	b, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(b)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, err := DecodeEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"recordId":"1"}`))
	assert.Error(t, err)
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = NoopNotifier{}
	assert.NoError(t, n.Notify(context.Background(), NewEventPayload("users", "a", ActionCreate)))
	n.Close()
}
