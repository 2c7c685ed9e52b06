// Package usecases contains the stock query orchestration: short-lived result
// caching, session acquisition and the single forced re-login retry.
package usecases

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"golang.org/x/sync/singleflight"

	"stocktake/internal/domain/stock"
	"stocktake/internal/infrastructure/ecount"
	"stocktake/internal/shared/biztime"
	"stocktake/internal/shared/config"
	"stocktake/internal/shared/logger"
)

// SessionProvider hands out upstream session tokens.
type SessionProvider interface {
	ValidSession(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) (string, error)
}

// BalanceFetcher runs the upstream stock query.
type BalanceFetcher interface {
	InventoryBalance(ctx context.Context, sessionID string, q ecount.BalanceQuery) (*ecount.BalanceResult, error)
}

// StockBalanceDTO carries the upstream response payload. Payload is the
// upstream body verbatim so clients see exactly what the ERP returned.
type StockBalanceDTO struct {
	Payload   json.RawMessage
	OK        bool
	FromCache bool
}

// GetStockBalanceUseCase answers stock queries from a short-lived shared
// cache, refreshing it from the upstream on miss. Refreshes are deduplicated
// the same two-layered way session logins are: jitter-then-recheck across
// processes, singleflight within one.
type GetStockBalanceUseCase struct {
	sessions SessionProvider
	fetcher  BalanceFetcher
	cache    stock.CacheRepository
	logger   logger.Interface

	stockTTL  time.Duration
	jitterMax time.Duration

	group singleflight.Group
	sleep func(time.Duration)
	now   func() time.Time
}

func NewGetStockBalanceUseCase(
	sessions SessionProvider,
	fetcher BalanceFetcher,
	cache stock.CacheRepository,
	cfg config.EcountConfig,
	log logger.Interface,
) *GetStockBalanceUseCase {
	return &GetStockBalanceUseCase{
		sessions:  sessions,
		fetcher:   fetcher,
		cache:     cache,
		logger:    log,
		stockTTL:  time.Duration(cfg.StockCacheTTLSeconds) * time.Second,
		jitterMax: time.Duration(cfg.LoginJitterMS) * time.Millisecond,
		sleep:     time.Sleep,
		now:       biztime.NowUTC,
	}
}

// Execute returns the current stock snapshot. A cached payload younger than
// the stock TTL is served as-is; otherwise the upstream is queried once per
// process, with a single forced re-login retry when the upstream rejects the
// session it was handed.
func (uc *GetStockBalanceUseCase) Execute(ctx context.Context, query ecount.BalanceQuery) (*StockBalanceDTO, error) {
	if dto, ok := uc.cachedStock(ctx); ok {
		return dto, nil
	}

	if uc.jitterMax > 0 {
		uc.sleep(time.Duration(rand.Int63n(int64(uc.jitterMax))))
	}
	if dto, ok := uc.cachedStock(ctx); ok {
		return dto, nil
	}

	v, err, shared := uc.group.Do("stock", func() (any, error) {
		return uc.refresh(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		uc.logger.Debugw("stock refresh shared with concurrent caller")
	}
	return v.(*StockBalanceDTO), nil
}

func (uc *GetStockBalanceUseCase) cachedStock(ctx context.Context) (*StockBalanceDTO, bool) {
	rec, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Warnw("stock cache unavailable, querying upstream directly", "error", err)
		return nil, false
	}
	if !rec.StockFresh(uc.stockTTL, uc.now()) {
		return nil, false
	}
	return &StockBalanceDTO{Payload: rec.StockData, OK: true, FromCache: true}, true
}

// refresh queries the upstream and caches a successful result. An upstream
// rejection (non-200 envelope) triggers exactly one forced re-login and
// retry; a second rejection is returned to the client unretried.
func (uc *GetStockBalanceUseCase) refresh(ctx context.Context, query ecount.BalanceQuery) (*StockBalanceDTO, error) {
	sid, err := uc.sessions.ValidSession(ctx)
	if err != nil {
		return nil, err
	}

	result, err := uc.fetcher.InventoryBalance(ctx, sid, query)
	if err != nil {
		return nil, err
	}

	if !result.Status.OK() {
		uc.logger.Infow("upstream rejected stock query, forcing re-login",
			"status", string(result.Status),
			"synthesized", result.Synthesized,
		)
		sid, err = uc.sessions.ForceRefresh(ctx)
		if err != nil {
			return nil, err
		}
		result, err = uc.fetcher.InventoryBalance(ctx, sid, query)
		if err != nil {
			return nil, err
		}
	}

	dto := &StockBalanceDTO{Payload: result.Raw, OK: result.Status.OK()}
	if dto.OK {
		if err := uc.cache.SaveStock(ctx, result.Raw, uc.now()); err != nil {
			uc.logger.Warnw("failed to cache stock result", "error", err)
		}
	}
	return dto, nil
}
