package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run(`nil client check`, func(t *testing.T) {
		require.Nil(t, NewPublisher(nil, "stream").Publish(ctx, DomainEvent{EventType: JobPublished}))
	})

	t.Run(`stream append check`, func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		p := NewPublisher(client, "recruit:events")
		require.Nil(t, p.Publish(ctx, DomainEvent{EventType: ApplicationSubmitted, JobID: 10, ApplicationID: 5, Payload: map[string]any{"reapplied": true}}))

		entries, err := client.XRange(ctx, "recruit:events", "-", "+").Result()
		require.Nil(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, string(ApplicationSubmitted), entries[0].Values["event_type"])

		var event DomainEvent
		require.Nil(t, json.Unmarshal([]byte(entries[0].Values["event"].(string)), &event))
		require.NotEmpty(t, event.EventID.String())
		require.False(t, event.Timestamp.IsZero())
		require.Equal(t, int64(5), event.ApplicationID)
		require.Equal(t, true, event.Payload["reapplied"])
	})

	t.Run(`redis down check`, func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		mr.Close()

		require.NotNil(t, NewPublisher(client, "recruit:events").Publish(ctx, DomainEvent{EventType: JobPublished, JobID: 1}))
	})
}
