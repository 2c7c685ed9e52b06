// Package ecount implements the client for the Ecount ERP OpenAPI: session
// login, zone resolution and inventory balance queries. All requests are
// routed to a zone-sharded host (oapi{ZONE}.ecount.com, sboapi{ZONE} in the
// sandbox).
package ecount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stocktake/internal/shared/biztime"
	"stocktake/internal/shared/config"
	"stocktake/internal/shared/logger"
	"stocktake/internal/shared/utils"
)

const (
	prodHostPrefix    = "oapi"
	sandboxHostPrefix = "sboapi"

	loginPath            = "/OAPI/V2/OAPILogin"
	zonePath             = "/OAPI/V2/Zone"
	inventoryBalancePath = "/OAPI/V2/InventoryBalance/GetListInventoryBalanceStatusByLocation"

	httpTimeout      = 10 * time.Second
	maxResponseBytes = 4 << 20
	rawExcerptLimit  = 500
)

// Client issues requests against the Ecount OpenAPI.
type Client struct {
	cfg        config.EcountConfig
	zones      ZoneResolver
	httpClient *http.Client
	logger     logger.Interface

	// baseURL overrides the zone-sharded host when set. Used by tests and
	// local proxies.
	baseURL string
}

func NewClient(cfg config.EcountConfig, zones ZoneResolver, log logger.Interface) *Client {
	return &Client{
		cfg:        cfg,
		zones:      zones,
		httpClient: &http.Client{Timeout: httpTimeout},
		logger:     log,
	}
}

func (c *Client) endpoint(ctx context.Context) (string, error) {
	if c.baseURL != "" {
		return c.baseURL, nil
	}
	zone, err := c.zones.Zone(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve zone: %w", err)
	}
	prefix := prodHostPrefix
	if c.cfg.Sandbox {
		prefix = sandboxHostPrefix
	}
	return fmt.Sprintf("https://%s%s.ecount.com", prefix, strings.ToUpper(zone)), nil
}

type loginRequest struct {
	ComCode    string `json:"COM_CODE"`
	UserID     string `json:"USER_ID"`
	APICertKey string `json:"API_CERT_KEY"`
	Zone       string `json:"ZONE"`
	LanType    string `json:"LAN_TYPE"`
}

type loginResponse struct {
	Status Status `json:"Status"`
	Data   struct {
		Datas struct {
			SessionID string `json:"SESSION_ID"`
		} `json:"Datas"`
	} `json:"Data"`
}

// Login authenticates against the upstream and returns a fresh session id.
// A response that is answered but unusable (non-200 status, missing session
// id, HTML or unparseable body) yields a *LoginFailedError; transport-level
// failures are returned as plain errors.
func (c *Client) Login(ctx context.Context) (string, error) {
	base, err := c.endpoint(ctx)
	if err != nil {
		return "", err
	}

	zone, err := c.zones.Zone(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve zone: %w", err)
	}

	payload, err := json.Marshal(loginRequest{
		ComCode:    c.cfg.ComCode,
		UserID:     c.cfg.UserID,
		APICertKey: c.cfg.APICertKey,
		Zone:       zone,
		LanType:    c.cfg.LanType,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login request: %w", err)
	}

	c.logger.Debugw("logging in to ecount",
		"com_code", c.cfg.ComCode,
		"zone", zone,
		"api_cert_key", utils.MaskSecret(c.cfg.APICertKey),
	)

	body, err := c.post(ctx, base+loginPath, payload)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}

	if isHTML(body) {
		return "", &LoginFailedError{
			Reason: "upstream returned HTML instead of JSON (server error or rate limit)",
			Raw:    excerpt(body),
		}
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", &LoginFailedError{
			Reason: fmt.Sprintf("unparseable login response: %v", err),
			Raw:    excerpt(body),
		}
	}

	if !lr.Status.OK() || lr.Data.Datas.SessionID == "" {
		return "", &LoginFailedError{
			Reason: fmt.Sprintf("login rejected with status %q", lr.Status),
			Raw:    excerpt(body),
		}
	}

	return lr.Data.Datas.SessionID, nil
}

// BalanceQuery filters an inventory balance lookup. Zero values fall back to
// the configured warehouse and today's date in the business timezone.
type BalanceQuery struct {
	ProdCode      string
	WarehouseCode string
	BaseDate      string
}

type balanceRequest struct {
	ProdCode      string `json:"PROD_CD"`
	WarehouseCode string `json:"WH_CD"`
	BaseDate      string `json:"BASE_DATE"`
}

// BalanceResult is the parsed (or synthesized) outcome of a balance query.
// Raw is returned to clients verbatim so the upstream envelope survives the
// round trip byte-identically.
type BalanceResult struct {
	Status      Status
	Raw         json.RawMessage
	Synthesized bool
}

// InventoryBalance queries the stock snapshot using sessionID. An HTML or
// unparseable body is not an error: it is converted into a synthesized
// non-200 result so the caller's single retry path treats it the same as an
// upstream-reported invalid session.
func (c *Client) InventoryBalance(ctx context.Context, sessionID string, q BalanceQuery) (*BalanceResult, error) {
	base, err := c.endpoint(ctx)
	if err != nil {
		return nil, err
	}

	if q.WarehouseCode == "" {
		q.WarehouseCode = c.cfg.WarehouseCode
	}
	if q.BaseDate == "" {
		q.BaseDate = biztime.TodayCompact()
	}

	payload, err := json.Marshal(balanceRequest{
		ProdCode:      q.ProdCode,
		WarehouseCode: q.WarehouseCode,
		BaseDate:      q.BaseDate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal balance request: %w", err)
	}

	target := base + inventoryBalancePath + "?SESSION_ID=" + url.QueryEscape(sessionID)
	body, err := c.post(ctx, target, payload)
	if err != nil {
		return nil, fmt.Errorf("balance request: %w", err)
	}

	if isHTML(body) {
		c.logger.Warnw("ecount returned HTML for balance query", "body", excerpt(body))
		return synthesizedFailure("ECOUNT API returned HTML instead of JSON (server error or rate limit)"), nil
	}

	var br struct {
		Status Status `json:"Status"`
	}
	if err := json.Unmarshal(body, &br); err != nil {
		c.logger.Warnw("unparseable balance response", "error", err, "body", excerpt(body))
		return synthesizedFailure(fmt.Sprintf("unparseable upstream response: %v", err)), nil
	}

	return &BalanceResult{Status: br.Status, Raw: body}, nil
}

// synthesizedFailure builds a failure envelope with a sentinel non-200 status
// so retry handling stays uniform with upstream-reported failures.
func synthesizedFailure(message string) *BalanceResult {
	raw, _ := json.Marshal(map[string]string{
		"Status": "500",
		"Error":  message,
	})
	return &BalanceResult{Status: Status("500"), Raw: raw, Synthesized: true}
}

func (c *Client) post(ctx context.Context, target string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// isHTML detects the upstream's outage/rate-limit pages, which come back as
// HTML with a 200 transport status.
func isHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > rawExcerptLimit {
		return s[:rawExcerptLimit]
	}
	return s
}
