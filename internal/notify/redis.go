package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher broadcasts events over a Redis Pub/Sub channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher wraps an existing redis client. channel defaults to
// "brandforge:generations".
func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "brandforge:generations"
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: encode event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("notify: publish: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// Subscribe delivers events from the publisher's channel to handler until
// ctx is cancelled.
func (p *RedisPublisher) Subscribe(ctx context.Context, handler func(Event)) error {
	return Subscribe(ctx, p.rdb, p.channel, handler)
}

// Subscribe delivers every event published on the channel to handler until
// ctx is cancelled. It runs in the calling goroutine.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, handler func(Event)) error {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "brandforge:generations"
	}
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			handler(event)
		}
	}
}

var _ Publisher = (*RedisPublisher)(nil)
