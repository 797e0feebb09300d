// Package redis wraps go-redis with the small surface the display manager
// needs: hash writes with an accompanying pub/sub notification (so other
// librescoot services can react to a UI state change without polling),
// plain hash reads, and the pub/sub subscribe used by the simulated-input
// harness.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Client is a thin wrapper around *redis.Client.
type Client struct {
	client *redis.Client
	ctx    context.Context
}

// New dials addr and pings it once so callers fail fast on a bad config.
func New(addr string, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &Client{
		client: client,
		ctx:    ctx,
	}, nil
}

// WriteAndPublishString writes a string value to Redis and publishes it.
func (c *Client) WriteAndPublishString(key, field, value string) error {
	pipe := c.client.Pipeline()
	pipe.HSet(c.ctx, key, field, value)
	pipe.Publish(c.ctx, key, fmt.Sprintf("%s:%s", field, value))
	_, err := pipe.Exec(c.ctx)
	return err
}

// WriteInt writes an integer value to Redis.
func (c *Client) WriteInt(key, field string, value int) error {
	return c.client.HSet(c.ctx, key, field, value).Err()
}

// WriteAndPublishInt writes an integer value to Redis and publishes it.
func (c *Client) WriteAndPublishInt(key, field string, value int) error {
	pipe := c.client.Pipeline()
	pipe.HSet(c.ctx, key, field, value)
	pipe.Publish(c.ctx, key, fmt.Sprintf("%s:%d", field, value))
	_, err := pipe.Exec(c.ctx)
	return err
}

// WriteBytes stores a raw (typically CBOR-encoded) blob under a hash
// field - used for the widget-registry snapshot.
func (c *Client) WriteBytes(key, field string, value []byte) error {
	return c.client.HSet(c.ctx, key, field, value).Err()
}

// GetString gets a string value from Redis.
func (c *Client) GetString(key, field string) (string, error) {
	val, err := c.client.HGet(c.ctx, key, field).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key %s field %s not found", key, field)
	}
	return val, err
}

// GetInt gets an integer value from Redis.
func (c *Client) GetInt(key, field string) (int, error) {
	val, err := c.client.HGet(c.ctx, key, field).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("key %s field %s not found", key, field)
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Subscribe subscribes to a Redis channel and returns a channel for
// messages plus a function to unsubscribe and release resources.
func (c *Client) Subscribe(channel string) (<-chan *redis.Message, func()) {
	pubsub := c.client.Subscribe(c.ctx, channel)
	ch := pubsub.Channel()
	return ch, func() { pubsub.Close() }
}

// Publish publishes a message to a Redis channel.
func (c *Client) Publish(channel string, message string) error {
	return c.client.Publish(c.ctx, channel, message).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
