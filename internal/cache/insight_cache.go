package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"kudoswall/internal/model"
)

// InsightCache stores parsed insight results so repeated requests over the
// same transcripts do not call the model again.
type InsightCache interface {
	Get(ctx context.Context, key string) (*model.InsightResult, error)
	Set(ctx context.Context, key string, result *model.InsightResult) error
}

type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a new insight cache
func NewInsightCache(client *redis.Client, ttl time.Duration) InsightCache {
	return &insightCache{
		client: client,
		ttl:    ttl,
	}
}

// InsightKey identifies a result by form, kind and the exact prompt sent.
func InsightKey(formID string, kind model.InsightKind, prompt string) string {
	return fmt.Sprintf("form:%s:insights:%s:%016x", formID, kind, xxhash.Sum64String(prompt))
}

func (c *insightCache) Get(ctx context.Context, key string) (*model.InsightResult, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.InsightResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *insightCache) Set(ctx context.Context, key string, result *model.InsightResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
