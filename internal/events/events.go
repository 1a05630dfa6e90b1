package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EventPayload describes a change to a single record.
type EventPayload struct {
	Collection string `json:"collection"`
	RecordID   string `json:"recordId"`
	Action     string `json:"action"` // create, update, delete
	Timestamp  int64  `json:"timestamp"`
}

// NewEventPayload stamps a change event with the current time in unix milliseconds.
func NewEventPayload(collection, recordID, action string) EventPayload {
	return EventPayload{
		Collection: collection,
		RecordID:   recordID,
		Action:     action,
		Timestamp:  time.Now().UTC().UnixMilli(),
	}
}

// Notifier publishes record change events.
type Notifier interface {
	Notify(ctx context.Context, event EventPayload) error
	Close()
}

// NoopNotifier drops every event. It is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, EventPayload) error { return nil }

func (NoopNotifier) Close() {}

type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{
		client:   client,
		producer: producer,
	}, nil
}

// Notify publishes an event to Pulsar, keyed by collection so that changes to
// one collection keep their order.
func (p *EventPublisher) Notify(ctx context.Context, event EventPayload) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Key:     event.Collection,
		Payload: message,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}
	return nil
}

// Close closes the Pulsar producer and client
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}

// DecodeEvent parses a message payload published by EventPublisher.
func DecodeEvent(payload []byte) (EventPayload, error) {
	var event EventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return EventPayload{}, fmt.Errorf("could not decode event payload: %w", err)
	}
	if event.Collection == "" || event.Action == "" {
		return EventPayload{}, fmt.Errorf("event payload is missing collection or action")
	}
	return event, nil
}
