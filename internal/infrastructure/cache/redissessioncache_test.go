package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisCacheRepository_Get_Empty(t *testing.T) {
	repo := NewRedisCacheRepository(setupTestRedis(t))

	rec, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRedisCacheRepository_SaveSession_RoundTrip(t *testing.T) {
	repo := NewRedisCacheRepository(setupTestRedis(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 9, 30, 0, 123456000, time.UTC)

	require.NoError(t, repo.SaveSession(ctx, "sess-abc", at))

	rec, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "sess-abc", rec.SessionID)
	assert.True(t, at.Equal(rec.SessionUpdatedAt))
	assert.True(t, rec.SessionFresh(time.Hour, at.Add(time.Minute)))
}

func TestRedisCacheRepository_FieldPairsIndependent(t *testing.T) {
	repo := NewRedisCacheRepository(setupTestRedis(t))
	ctx := context.Background()
	sessionAt := time.Now().UTC().Truncate(time.Millisecond)
	payload := json.RawMessage(`{"Status":"200","Data":{"Result":[]}}`)

	require.NoError(t, repo.SaveSession(ctx, "sess-abc", sessionAt))
	require.NoError(t, repo.SaveStock(ctx, payload, time.Now().UTC()))

	rec, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-abc", rec.SessionID)
	assert.True(t, sessionAt.Equal(rec.SessionUpdatedAt))
	assert.JSONEq(t, string(payload), string(rec.StockData))
}

func TestRedisCacheRepository_StockOnly(t *testing.T) {
	repo := NewRedisCacheRepository(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveStock(ctx, json.RawMessage(`{"Status":"200"}`), time.Now().UTC()))

	rec, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, rec.HasSession())
	assert.Equal(t, "", rec.SessionID)
	assert.True(t, rec.StockFresh(time.Minute, time.Now().UTC()))
}
