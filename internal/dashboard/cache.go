package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates no cached summary exists for the key.
var ErrCacheMiss = errors.New("dashboard cache miss")

// Cache wraps Redis based caching of dashboard summaries. A nil Cache or a
// Cache without a client degrades to miss-on-read, write-noop.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func summaryKey(year, month int) string {
	return fmt.Sprintf("dashboard:summary:%04d-%02d", year, month)
}

// GetSummary returns the cached summary or ErrCacheMiss.
func (c *Cache) GetSummary(ctx context.Context, year, month int) (Summary, error) {
	if c == nil || c.client == nil {
		return Summary{}, ErrCacheMiss
	}
	data, err := c.client.Get(ctx, summaryKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Summary{}, ErrCacheMiss
	}
	if err != nil {
		return Summary{}, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, ErrCacheMiss
	}
	return s, nil
}

// SetSummary stores the summary with the configured TTL.
func (c *Cache) SetSummary(ctx context.Context, s Summary) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(s.Year, s.Month), data, c.ttl).Err()
}

// Invalidate drops the cached summary for a period, used after writes that
// change the figures.
func (c *Cache) Invalidate(ctx context.Context, year, month int) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, summaryKey(year, month)).Err()
}
