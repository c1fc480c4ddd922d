package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// channelFor namespaces bus streams within the shared Redis instance.
func channelFor(stream string) string {
	return "events:" + stream
}

// RedisPublisher fans events out over Redis pub/sub. Delivery is
// at-most-once; consumers that miss an event reconcile from the database.
type RedisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisPublisher(client *redis.Client, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, stream string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, channelFor(stream), data).Err(); err != nil {
		return err
	}
	p.log.Debug("event published", zap.String("stream", stream), zap.String("type", event.Type))
	return nil
}

type RedisSubscriber struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisSubscriber(client *redis.Client, log *zap.Logger) *RedisSubscriber {
	return &RedisSubscriber{client: client, log: log}
}

// Subscribe feeds decoded events to handler from a goroutine until ctx is
// cancelled. The subscription is confirmed before Subscribe returns, so a
// Publish issued afterwards is observable.
func (s *RedisSubscriber) Subscribe(ctx context.Context, stream string, handler func(Event)) error {
	pubsub := s.client.Subscribe(ctx, channelFor(stream))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return err
	}

	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.log.Error("bad event payload", zap.String("stream", stream), zap.Error(err))
					continue
				}
				handler(event)
			}
		}
	}()
	return nil
}
