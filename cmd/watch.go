package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the Pulsar consumer and log record change events",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		topic := appCfg.Pulsar.TopicConsumer
		if topic == "" {
			topic = appCfg.Pulsar.TopicProducer
		}

		consumer, err := events.NewEventConsumer(appCfg.Pulsar.URL, topic, appCfg.Pulsar.Subscription)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event consumer")
		}
		defer consumer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = log.Logger.WithContext(ctx)

		log.Info().Str("topic", topic).Msg("Waiting for change events...")

		if err := consumer.Run(ctx, logEvent); err != nil {
			log.Error().Err(err).Msg("Consumer stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func logEvent(ctx context.Context, event events.EventPayload) error {
	log.Ctx(ctx).Info().
		Str("collection", event.Collection).
		Str("record_id", event.RecordID).
		Str("action", event.Action).
		Time("at", time.UnixMilli(event.Timestamp).UTC()).
		Msg("Change event")
	return nil
}
