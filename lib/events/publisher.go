package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type EventType string

const (
	JobPublished             EventType = "job.published"
	JobUpdated               EventType = "job.updated"
	ApplicationSubmitted     EventType = "application.submitted"
	ApplicationStatusChanged EventType = "application.status_changed"
)

// DomainEvent is the payload appended to the event stream.
type DomainEvent struct {
	EventID       uuid.UUID      `json:"event_id"`
	EventType     EventType      `json:"event_type"`
	JobID         int64          `json:"job_id,omitempty"`
	ApplicationID int64          `json:"application_id,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

type Provider interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// NewPublisher returns a no-op publisher when client is nil.
func NewPublisher(client *redis.Client, stream string) Provider {
	return &publisher{
		client: client,
		stream: stream,
	}
}

type publisher struct {
	client *redis.Client
	stream string
}

func (p *publisher) Publish(ctx context.Context, event DomainEvent) error {
	if p.client == nil {
		return nil
	}
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event_type": string(event.EventType),
			"event":      string(payload),
		},
	})
	if err = result.Err(); err != nil {
		return errors.Wrap(err, "publish to stream")
	}
	log.
		WithField("event_type", event.EventType).
		WithField("stream_id", result.Val()).
		Debug("event published")
	return nil
}
