package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/skill-exchange/internal/core/events"
	"github.com/frahmantamala/skill-exchange/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events through the request lifecycle audit handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var (
	eventData      string
	eventRequestID int64
)

func publishTestEvent(eventType string) {
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	events.SubscribeRequestAudit(bus, lg)

	var event events.Event
	switch eventType {
	case events.EventTypeRequestCreated, events.EventTypeRequestAccepted, events.EventTypeRequestDeclined:
		event = events.NewRequestEvent(eventType, eventRequestID, 0, 0, 0, "test", 0)
	default:
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			lg.Info("test handler received event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
		event = events.BaseEvent{
			ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"message": eventData,
				"source":  "cli-command",
			},
		}
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bus.Publish(ctx, event); err != nil {
		lg.Error("failed to publish event", "error", err)
		return
	}
	if err := bus.Drain(ctx); err != nil {
		lg.Error("event handlers did not finish", "error", err)
		return
	}
	lg.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")
	publishEventCmd.Flags().Int64Var(&eventRequestID, "request-id", 0, "Request id carried by request.* events")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
