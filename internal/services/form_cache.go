package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/utils"
)

// CacheClient is the part of the Redis API the form cache needs. *redisclient.Client
// satisfies it.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// FormCache keeps seeded forms in Redis. A form is only reproducible for a fixed seed on
// a fixed day, so the date is part of the key. Failures are logged and treated as misses.
type FormCache struct {
	client CacheClient
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewFormCache creates a form cache. A nil client disables caching.
func NewFormCache(client CacheClient, ttl time.Duration, logger *logging.SafeLogger) *FormCache {
	if logger == nil {
		logger = logging.Logger
	}
	return &FormCache{client: client, ttl: ttl, logger: logger}
}

// FormCacheKey builds the Redis key of a seeded form.
func FormCacheKey(docType models.DocumentType, seed int64, date models.Date) string {
	return fmt.Sprintf("forms:%s:%d:%s", docType.ShortName(), seed, date)
}

// Get returns the cached form, if any.
func (c *FormCache) Get(ctx context.Context, docType models.DocumentType, seed int64, date models.Date) (models.Form, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	key := FormCacheKey(docType, seed, date)
	ctx, span, done := utils.TraceCacheOperation(ctx, "get", key)
	defer done()

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.FormCacheOperations.WithLabelValues("get", "miss").Inc()
		return nil, false
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.FormCacheOperations.WithLabelValues("get", "error").Inc()
		c.logger.Warn("form cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	form, err := models.NewForm(docType)
	if err != nil {
		observability.FormCacheOperations.WithLabelValues("get", "error").Inc()
		return nil, false
	}
	if err := json.Unmarshal(data, form); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.FormCacheOperations.WithLabelValues("get", "error").Inc()
		c.logger.Warn("discarding undecodable cached form", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	observability.FormCacheOperations.WithLabelValues("get", "hit").Inc()
	return form, true
}

// Set stores form under its own seed and the given date.
func (c *FormCache) Set(ctx context.Context, form models.Form, date models.Date) {
	if c == nil || c.client == nil || form == nil {
		return
	}

	header := form.Header()
	key := FormCacheKey(header.DocumentType, header.Seed, date)
	ctx, span, done := utils.TraceCacheOperation(ctx, "set", key)
	defer done()

	data, err := json.Marshal(form)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.FormCacheOperations.WithLabelValues("set", "error").Inc()
		c.logger.Error("failed to encode form for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.FormCacheOperations.WithLabelValues("set", "error").Inc()
		c.logger.Warn("form cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	observability.FormCacheOperations.WithLabelValues("set", "ok").Inc()
}
