package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/forms"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func defaultCatalog() *catalog.Catalog {
	cat, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	return cat
}

func newTestBuilder() *forms.Builder {
	return forms.NewBuilder(defaultCatalog(), forms.WithClock(func() time.Time { return fixedNow }))
}

// fakeCacheClient is an in-memory CacheClient.
type fakeCacheClient struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	gets   int
	sets   int
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCacheClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCacheClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		return redis.NewStatusResult("", errors.New("unsupported value type"))
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}
