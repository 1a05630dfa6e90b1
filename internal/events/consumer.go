package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
)

// EventHandler processes one decoded change event.
type EventHandler func(ctx context.Context, event EventPayload) error

// EventConsumer reads change events from a shared Pulsar subscription.
type EventConsumer struct {
	client   pulsar.Client
	consumer pulsar.Consumer
}

// NewEventConsumer initializes the Pulsar client and consumer. Messages that
// fail three deliveries are moved to "<topic>-dlq".
func NewEventConsumer(pulsarURL, topic, subscription string) (*EventConsumer, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:            topic,
		SubscriptionName: subscription,
		Type:             pulsar.Shared,
		DLQ: &pulsar.DLQPolicy{
			MaxDeliveries:   3,
			DeadLetterTopic: topic + "-dlq",
		},
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &EventConsumer{client: client, consumer: consumer}, nil
}

// Run receives messages until ctx is cancelled. Each payload is decoded and
// passed to handle; the message is acked when handle succeeds and nacked
// otherwise.
func (c *EventConsumer) Run(ctx context.Context, handle EventHandler) error {
	logger := zerolog.Ctx(ctx)

	for {
		msg, err := c.consumer.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			logger.Error().Err(err).Msg("Error receiving message")
			continue
		}

		event, err := DecodeEvent(msg.Payload())
		if err == nil {
			err = handle(ctx, event)
		}
		if err != nil {
			logger.Warn().Err(err).Str("message_id", msg.ID().String()).Msg("Failed to process change event")
			c.consumer.Nack(msg)
			continue
		}

		if err := c.consumer.Ack(msg); err != nil {
			logger.Error().Err(err).Str("message_id", msg.ID().String()).Msg("Failed to ack change event")
		}
	}
}

// Close cleans up the Pulsar consumer and client.
func (c *EventConsumer) Close() {
	c.consumer.Close()
	c.client.Close()
}
