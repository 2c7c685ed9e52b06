package ecount

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/singleflight"

	"stocktake/internal/domain/stock"
	"stocktake/internal/shared/biztime"
	"stocktake/internal/shared/config"
	"stocktake/internal/shared/logger"
)

// LoginClient is the narrow client surface the session manager needs.
type LoginClient interface {
	Login(ctx context.Context) (string, error)
}

// SessionManager hands out a valid upstream session token while keeping
// login traffic low. De-duplication is two-layered: a jitter-then-recheck
// against the shared cache record coordinates across processes (advisory,
// duplicate logins under race are tolerated), and a singleflight group makes
// it a hard guarantee within one process.
type SessionManager struct {
	client LoginClient
	cache  stock.CacheRepository
	logger logger.Interface

	sessionTTL time.Duration
	jitterMax  time.Duration

	group singleflight.Group
	sleep func(time.Duration)
	now   func() time.Time
}

func NewSessionManager(client LoginClient, cache stock.CacheRepository, cfg config.EcountConfig, log logger.Interface) *SessionManager {
	return &SessionManager{
		client:     client,
		cache:      cache,
		logger:     log,
		sessionTTL: time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		jitterMax:  time.Duration(cfg.LoginJitterMS) * time.Millisecond,
		sleep:      time.Sleep,
		now:        biztime.NowUTC,
	}
}

// ValidSession returns a cached session token when it is younger than the
// freshness threshold, logging in otherwise. A fresh cache hit makes zero
// network calls.
func (m *SessionManager) ValidSession(ctx context.Context) (string, error) {
	if sid, ok := m.cachedSession(ctx); ok {
		return sid, nil
	}

	// Spread a login storm apart in time, then look again: another caller
	// may have refreshed the shared record while this one slept.
	if m.jitterMax > 0 {
		m.sleep(time.Duration(rand.Int63n(int64(m.jitterMax))))
	}
	if sid, ok := m.cachedSession(ctx); ok {
		return sid, nil
	}

	return m.login(ctx)
}

// ForceRefresh logs in unconditionally. Used after the downstream rejects a
// token that looked fresh (upstream sessions can expire early).
func (m *SessionManager) ForceRefresh(ctx context.Context) (string, error) {
	return m.login(ctx)
}

func (m *SessionManager) cachedSession(ctx context.Context) (string, bool) {
	rec, err := m.cache.Get(ctx)
	if err != nil {
		// Cache being down degrades to login-per-request, never to a failed
		// request.
		m.logger.Warnw("session cache unavailable, proceeding without it", "error", err)
		return "", false
	}
	if rec.SessionFresh(m.sessionTTL, m.now()) {
		return rec.SessionID, true
	}
	return "", false
}

func (m *SessionManager) login(ctx context.Context) (string, error) {
	v, err, shared := m.group.Do("login", func() (any, error) {
		sid, err := m.client.Login(ctx)
		if err != nil {
			return nil, err
		}

		if err := m.cache.SaveSession(ctx, sid, m.now()); err != nil {
			m.logger.Warnw("failed to persist session token", "error", err)
		}
		return sid, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		m.logger.Debugw("login shared with concurrent caller")
	}
	return v.(string), nil
}
