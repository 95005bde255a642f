// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package bus

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel shared by all oCRM instances.
const DefaultChannel = "ocrm:changes"

// Redis fans change signals out across instances over one pub/sub channel.
// Local subscribers still fire synchronously in registration order; remote
// delivery is best-effort. An instance skips its own messages, the way a
// browser tab never receives its own storage event.
type Redis struct {
	client   *redis.Client
	channel  string
	instance string
	local    *Local
	pubsub   *redis.PubSub
	closed   atomic.Bool
}

// RedisOptions configures the cross-instance notifier.
type RedisOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Channel is the pub/sub channel name. Defaults to DefaultChannel.
	Channel string

	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
}

// NewRedis connects to Redis and starts the receive loop.
func NewRedis(opts RedisOptions) (*Redis, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(redisOpts)

	connectTimeout := opts.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	channel := opts.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	b := &Redis{
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		local:    NewLocal(),
	}

	b.pubsub = client.Subscribe(context.Background(), channel)
	go b.receive()

	return b, nil
}

// Publish dispatches to local subscribers first, then broadcasts to other
// instances. A failed broadcast is logged, not returned: remote delivery
// is best-effort and must not fail the local write path.
func (b *Redis) Publish(ctx context.Context, collection string) error {
	if err := b.local.Publish(ctx, collection); err != nil {
		return err
	}

	payload := b.instance + "|" + collection
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		slog.Warn("cross-instance publish failed", "collection", collection, "error", err)
	}
	return nil
}

// Subscribe registers a handler for the collection.
func (b *Redis) Subscribe(collection string, h Handler) func() {
	return b.local.Subscribe(collection, h)
}

// receive dispatches messages from other instances to local subscribers.
func (b *Redis) receive() {
	for msg := range b.pubsub.Channel() {
		instance, collection, ok := strings.Cut(msg.Payload, "|")
		if !ok {
			slog.Warn("malformed change message", "payload", msg.Payload)
			continue
		}
		if instance == b.instance {
			continue
		}
		_ = b.local.Publish(context.Background(), collection)
	}
}

// Close stops the receive loop and closes the connection.
func (b *Redis) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := b.pubsub.Close(); err != nil {
		slog.Warn("closing pubsub failed", "error", err)
	}
	return b.client.Close()
}

// Ensure Redis implements Notifier.
var _ Notifier = (*Redis)(nil)
