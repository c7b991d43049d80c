package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher fans snapshots out to a Redis pub/sub channel, the
// same connectivity-verification style as the donor's internal/db.New
// for its Redis client.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher parses redisURL, pings it, and returns a publisher
// bound to channel.
func NewRedisPublisher(redisURL, channel string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("progress: parsing redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("progress: pinging redis: %w", err)
	}
	return &RedisPublisher{client: client, channel: channel}, nil
}

// Publish fans snap out to the configured Redis channel. A publish
// failure is logged and swallowed -- the same "transient I/O logged,
// search continues" policy that governs solution-sink errors, applied
// here to an observer rather than a sink.
func (p *RedisPublisher) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("progress: marshaling snapshot for redis: %v", err)
		return
	}
	if err := p.client.Publish(context.Background(), p.channel, data).Err(); err != nil {
		log.Printf("progress: publishing snapshot to redis: %v", err)
	}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
