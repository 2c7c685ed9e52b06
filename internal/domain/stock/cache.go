// Package stock defines the shared cache record that coordinates upstream
// session reuse and short-lived stock snapshots across stateless requests.
package stock

import (
	"context"
	"encoding/json"
	"time"
)

// SessionUnset is the sentinel stored before the first successful login.
const SessionUnset = "none"

// CacheRecord is the single shared row (fixed id) holding the latest upstream
// session token and the latest successful stock payload, each with its own
// timestamp. The two field pairs are updated independently; there is no
// cross-field consistency requirement.
type CacheRecord struct {
	SessionID        string
	SessionUpdatedAt time.Time
	StockData        json.RawMessage
	StockUpdatedAt   time.Time
}

// HasSession reports whether a usable token has ever been stored.
func (r *CacheRecord) HasSession() bool {
	return r != nil && r.SessionID != "" && r.SessionID != SessionUnset
}

// SessionFresh reports whether the stored token is younger than ttl.
func (r *CacheRecord) SessionFresh(ttl time.Duration, now time.Time) bool {
	return r.HasSession() && !r.SessionUpdatedAt.IsZero() && now.Sub(r.SessionUpdatedAt) < ttl
}

// StockFresh reports whether the stored payload is younger than ttl.
func (r *CacheRecord) StockFresh(ttl time.Duration, now time.Time) bool {
	return r != nil && len(r.StockData) > 0 && !r.StockUpdatedAt.IsZero() && now.Sub(r.StockUpdatedAt) < ttl
}

// CacheRepository persists the shared record. Get returns (nil, nil) when the
// record does not exist yet. Save operations are idempotent upserts touching
// exactly one field pair each.
type CacheRepository interface {
	Get(ctx context.Context) (*CacheRecord, error)
	SaveSession(ctx context.Context, sessionID string, updatedAt time.Time) error
	SaveStock(ctx context.Context, payload json.RawMessage, updatedAt time.Time) error
}
