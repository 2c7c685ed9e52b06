package ecount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"stocktake/internal/shared/config"
	"stocktake/internal/shared/logger"
)

// ZoneResolver resolves the upstream routing zone embedded into the API
// hostname. Two strategies exist because the upstream contract is ambiguous:
// deployments either know their zone (static) or look it up via the Zone
// endpoint (queried).
type ZoneResolver interface {
	Zone(ctx context.Context) (string, error)
}

// NewZoneResolver picks the strategy from config.
func NewZoneResolver(cfg config.EcountConfig, log logger.Interface) ZoneResolver {
	if cfg.ZoneLookup {
		return NewAPIZoneResolver(cfg, log)
	}
	return NewStaticZoneResolver(cfg.Zone)
}

// StaticZoneResolver returns a fixed, configured zone.
type StaticZoneResolver struct {
	zone string
}

func NewStaticZoneResolver(zone string) *StaticZoneResolver {
	return &StaticZoneResolver{zone: strings.ToUpper(strings.TrimSpace(zone))}
}

func (r *StaticZoneResolver) Zone(ctx context.Context) (string, error) {
	if r.zone == "" {
		return "", fmt.Errorf("ecount zone is not configured")
	}
	return r.zone, nil
}

// APIZoneResolver queries the Zone endpoint once and memoizes the result for
// the process lifetime. Zones are assigned per company and do not move.
type APIZoneResolver struct {
	comCode    string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface

	mu   sync.Mutex
	zone string
}

func NewAPIZoneResolver(cfg config.EcountConfig, log logger.Interface) *APIZoneResolver {
	prefix := prodHostPrefix
	if cfg.Sandbox {
		prefix = sandboxHostPrefix
	}
	return &APIZoneResolver{
		comCode:    cfg.ComCode,
		baseURL:    fmt.Sprintf("https://%s.ecount.com", prefix),
		httpClient: &http.Client{Timeout: httpTimeout},
		logger:     log,
	}
}

func (r *APIZoneResolver) Zone(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.zone != "" {
		return r.zone, nil
	}

	zone, err := r.fetchZone(ctx)
	if err != nil {
		return "", err
	}

	r.zone = zone
	r.logger.Infow("resolved ecount zone", "zone", zone)
	return zone, nil
}

func (r *APIZoneResolver) fetchZone(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"COM_CODE": r.comCode})
	if err != nil {
		return "", fmt.Errorf("marshal zone request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+zonePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create zone request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch zone: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read zone response: %w", err)
	}

	var zr struct {
		Status Status          `json:"Status"`
		Data   json.RawMessage `json:"Data"`
	}
	if err := json.Unmarshal(body, &zr); err != nil {
		return "", fmt.Errorf("parse zone response: %w", err)
	}
	if !zr.Status.OK() {
		return "", fmt.Errorf("zone lookup rejected with status %s", zr.Status)
	}

	zone, err := parseZoneData(zr.Data)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(zone), nil
}

// parseZoneData accepts both documented shapes of the Zone payload:
// a bare string ("AB") or an object ({"ZONE": "AB"}).
func parseZoneData(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		return s, nil
	}

	var obj struct {
		Zone string `json:"ZONE"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Zone != "" {
		return obj.Zone, nil
	}

	return "", fmt.Errorf("zone response carries no zone: %s", string(data))
}
