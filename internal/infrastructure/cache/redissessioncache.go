// Package cache provides the Redis-backed variant of the shared session and
// stock cache, selected by the cache.driver setting for multi-instance
// deployments where a database round trip per cache check is too slow.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stocktake/internal/domain/stock"
)

const (
	cacheKey = "stocktake:session_cache"

	fieldSessionID      = "session_id"
	fieldSessionUpdated = "session_updated_at"
	fieldStockData      = "stock_data"
	fieldStockUpdated   = "stock_updated_at"
)

// RedisCacheRepository implements stock.CacheRepository on a single Redis
// hash. Each save path writes only its own field pair, mirroring the
// column-scoped upserts of the database variant.
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

// Get retrieves the shared cache record, or (nil, nil) when nothing has been
// stored yet.
func (r *RedisCacheRepository) Get(ctx context.Context) (*stock.CacheRecord, error) {
	fields, err := r.client.HGetAll(ctx, cacheKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read cache hash: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	rec := &stock.CacheRecord{
		SessionID: fields[fieldSessionID],
	}
	if raw := fields[fieldStockData]; raw != "" {
		rec.StockData = json.RawMessage(raw)
	}
	if ts := fields[fieldSessionUpdated]; ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse session timestamp: %w", err)
		}
		rec.SessionUpdatedAt = t
	}
	if ts := fields[fieldStockUpdated]; ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse stock timestamp: %w", err)
		}
		rec.StockUpdatedAt = t
	}
	return rec, nil
}

// SaveSession stores a session token and its timestamp.
func (r *RedisCacheRepository) SaveSession(ctx context.Context, sessionID string, updatedAt time.Time) error {
	if err := r.client.HSet(ctx, cacheKey,
		fieldSessionID, sessionID,
		fieldSessionUpdated, updatedAt.UTC().Format(time.RFC3339Nano),
	).Err(); err != nil {
		return fmt.Errorf("write session fields: %w", err)
	}
	return nil
}

// SaveStock stores a stock payload and its timestamp.
func (r *RedisCacheRepository) SaveStock(ctx context.Context, payload json.RawMessage, updatedAt time.Time) error {
	if err := r.client.HSet(ctx, cacheKey,
		fieldStockData, string(payload),
		fieldStockUpdated, updatedAt.UTC().Format(time.RFC3339Nano),
	).Err(); err != nil {
		return fmt.Errorf("write stock fields: %w", err)
	}
	return nil
}
