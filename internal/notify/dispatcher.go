package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// EventKind identifies what happened to a resource
type EventKind string

const (
	EventAssigned      EventKind = "assigned"
	EventStatusChanged EventKind = "status_changed"
	EventCommented     EventKind = "commented"
	EventEmailQueued   EventKind = "email_queued"
)

// Event is the unit of work handed to the asynchronous notification
// collaborator. The request that produced it never waits for delivery.
type Event struct {
	Kind                EventKind   `json:"kind"`
	ResourceType        string      `json:"resource_type"`
	ResourceID          uuid.UUID   `json:"resource_id"`
	OrganizationID      uuid.UUID   `json:"organization_id"`
	RecipientProfileIDs []uuid.UUID `json:"recipient_profile_ids"`
	OccurredAt          time.Time   `json:"occurred_at"`
}

// Dispatcher hands notification events to an external queue
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// RedisDispatcher pushes events onto a Redis list consumed by the
// notification workers
type RedisDispatcher struct {
	client *redis.Client
	queue  string
}

// NewRedisDispatcher creates a dispatcher backed by the given Redis address
func NewRedisDispatcher(addr, password string, db int, queue string) *RedisDispatcher {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisDispatcher{client: client, queue: queue}
}

// Dispatch enqueues the event. Errors are returned for logging but
// callers are expected not to fail the request on them.
func (d *RedisDispatcher) Dispatch(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	if err := d.client.LPush(ctx, d.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue notification event: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}

// NoopDispatcher drops events. Used when no queue is configured and in tests.
type NoopDispatcher struct{}

// Dispatch logs the event at debug level and discards it
func (NoopDispatcher) Dispatch(_ context.Context, event Event) error {
	logrus.WithFields(logrus.Fields{
		"kind":     event.Kind,
		"resource": event.ResourceType,
	}).Debug("notification dispatch skipped: no queue configured")
	return nil
}
