package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRequestCreated  = "request.created"
	EventTypeRequestAccepted = "request.accepted"
	EventTypeRequestDeclined = "request.declined"
)

// RequestEventTypes lists every access request lifecycle event.
var RequestEventTypes = []string{
	EventTypeRequestCreated,
	EventTypeRequestAccepted,
	EventTypeRequestDeclined,
}

type RequestEvent struct {
	BaseEvent
	RequestID int64  `json:"request_id"`
	FromID    int64  `json:"from_id"`
	ToID      int64  `json:"to_id"`
	SkillID   int64  `json:"skill_id"`
	Status    string `json:"status"`
	ActorID   int64  `json:"actor_id"`
}

func NewRequestEvent(eventType string, requestID, fromID, toID, skillID int64, status string, actorID int64) *RequestEvent {
	return &RequestEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"from_id":    fromID,
				"to_id":      toID,
				"skill_id":   skillID,
				"status":     status,
				"actor_id":   actorID,
			},
		},
		RequestID: requestID,
		FromID:    fromID,
		ToID:      toID,
		SkillID:   skillID,
		Status:    status,
		ActorID:   actorID,
	}
}

// SubscribeRequestAudit writes one structured log line per request lifecycle event.
func SubscribeRequestAudit(bus *EventBus, logger *slog.Logger) {
	for _, eventType := range RequestEventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			logger.InfoContext(ctx, "request lifecycle",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		})
	}
}
