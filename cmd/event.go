package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/sewa-portal/internal/core/events"
	"github.com/frahmantamala/sewa-portal/internal/messaging"
	"github.com/frahmantamala/sewa-portal/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish sample domain events through the bus and, when kafka is enabled, the relay`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [donation.initiated|media.uploaded]",
	Short:     "Publish a test event",
	Long:      `Publish a sample domain event to check that handlers and the Kafka relay are wired`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{events.EventTypeDonationInitiated, events.EventTypeMediaUploaded},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var eventReference string

func publishTestEvent(ctx context.Context, eventType string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := logger.LoggerWrapper()

	event, err := sampleEvent(eventType)
	if err != nil {
		return err
	}

	eventBus := events.NewEventBus(lg)
	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	cfg, err := loadConfig(configPath)
	if err != nil {
		lg.Warn("config not loaded, publishing to the local bus only", "error", err)
	} else if cfg.Kafka.Enabled {
		relay := messaging.NewKafkaRelay(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), lg)
		relay.Register(eventBus)
		defer relay.Close()
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())
	if err := eventBus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	lg.Info("test event published successfully")
	return nil
}

func sampleEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EventTypeDonationInitiated:
		return events.NewDonationInitiatedEvent(eventReference, 1, "INR", "upi"), nil
	case events.EventTypeMediaUploaded:
		return events.NewMediaUploadedEvent("cli-test", "media", "media/cli-test.png", 1), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func init() {
	publishEventCmd.Flags().StringVar(&eventReference, "reference", "DON-0", "reference carried by a donation.initiated test event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
