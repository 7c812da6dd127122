package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const clientName = "synthforms"

// Client wraps the commands the form cache and health checks use with OpenTelemetry
// spans.
type Client struct {
	client *redis.Client
}

// NewClient wraps client.
func NewClient(client *redis.Client) *Client {
	return &Client{client: client}
}

// traced runs one command inside a span named redis.<operation>. A redis.Nil reply is a
// miss, not an error.
func (c *Client) traced(ctx context.Context, operation string, attrs []attribute.KeyValue, run func(ctx context.Context) redis.Cmder) {
	start := time.Now()
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", clientName),
	)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))
	defer func() {
		duration := time.Since(start)
		span.SetAttributes(
			attribute.Int64("redis.duration_ms", duration.Milliseconds()),
			attribute.String("redis.duration", duration.String()),
		)
		span.End()
	}()

	cmd := run(ctx)
	if err := cmd.Err(); err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("redis.error", err.Error()))
		return
	}
	span.SetStatus(codes.Ok, "success")
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	var cmd *redis.StringCmd
	c.traced(ctx, "get", []attribute.KeyValue{attribute.String("redis.key", key)}, func(ctx context.Context) redis.Cmder {
		cmd = c.client.Get(ctx, key)
		return cmd
	})
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	attrs := []attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	}
	c.traced(ctx, "set", attrs, func(ctx context.Context) redis.Cmder {
		cmd = c.client.Set(ctx, key, value, expiration)
		return cmd
	})
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	c.traced(ctx, "ping", nil, func(ctx context.Context) redis.Cmder {
		cmd = c.client.Ping(ctx)
		return cmd
	})
	return cmd
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
