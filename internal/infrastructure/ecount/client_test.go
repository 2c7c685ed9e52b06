package ecount

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/shared/config"
	"stocktake/internal/shared/logger"
)

type noopLogger struct{}

func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l noopLogger) With(args ...any) logger.Interface             { return l }

func testEcountConfig() config.EcountConfig {
	return config.EcountConfig{
		ComCode:       "123456",
		UserID:        "tester",
		APICertKey:    "cert-key",
		LanType:       "ko-KR",
		Zone:          "AB",
		WarehouseCode: "7777",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testEcountConfig()
	client := NewClient(cfg, NewStaticZoneResolver(cfg.Zone), noopLogger{})
	client.baseURL = srv.URL
	return client, srv
}

func TestClient_Login_Success(t *testing.T) {
	var gotPath string
	var gotBody loginRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"Status":"200","Data":{"Datas":{"SESSION_ID":"sess-123"}}}`))
	})

	sid, err := client.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sess-123", sid)
	assert.Equal(t, "/OAPI/V2/OAPILogin", gotPath)
	assert.Equal(t, "123456", gotBody.ComCode)
	assert.Equal(t, "tester", gotBody.UserID)
	assert.Equal(t, "cert-key", gotBody.APICertKey)
	assert.Equal(t, "AB", gotBody.Zone)
	assert.Equal(t, "ko-KR", gotBody.LanType)
}

func TestClient_Login_NumericStatus(t *testing.T) {
	// The upstream reports Status as a bare number on some endpoints.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":200,"Data":{"Datas":{"SESSION_ID":"sess-456"}}}`))
	})

	sid, err := client.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sess-456", sid)
}

func TestClient_Login_HTMLBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Service Unavailable</body></html>"))
	})

	_, err := client.Login(context.Background())

	var loginErr *LoginFailedError
	require.ErrorAs(t, err, &loginErr)
	assert.Contains(t, loginErr.Reason, "HTML")
}

func TestClient_Login_RejectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":"401","Data":{"Datas":{}}}`))
	})

	_, err := client.Login(context.Background())

	var loginErr *LoginFailedError
	require.ErrorAs(t, err, &loginErr)
	assert.Contains(t, loginErr.Reason, "401")
}

func TestClient_Login_MissingSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":"200","Data":{"Datas":{}}}`))
	})

	_, err := client.Login(context.Background())

	var loginErr *LoginFailedError
	require.ErrorAs(t, err, &loginErr)
}

func TestClient_Login_Unparseable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := client.Login(context.Background())

	var loginErr *LoginFailedError
	require.ErrorAs(t, err, &loginErr)
}

func TestClient_InventoryBalance_Success(t *testing.T) {
	upstream := `{"Status":"200","Data":{"Result":[{"PROD_CD":"A-1","BAL_QTY":"42"}]}}`
	var gotSession string
	var gotBody balanceRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.URL.Query().Get("SESSION_ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(upstream))
	})

	result, err := client.InventoryBalance(context.Background(), "sess-123", BalanceQuery{ProdCode: "A-1"})

	require.NoError(t, err)
	assert.True(t, result.Status.OK())
	assert.False(t, result.Synthesized)
	// The payload must survive byte-identically.
	assert.Equal(t, upstream, string(result.Raw))
	assert.Equal(t, "sess-123", gotSession)
	assert.Equal(t, "A-1", gotBody.ProdCode)
	assert.Equal(t, "7777", gotBody.WarehouseCode)
	assert.NotEmpty(t, gotBody.BaseDate)
}

func TestClient_InventoryBalance_HTMLBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html>rate limited</html>"))
	})

	result, err := client.InventoryBalance(context.Background(), "sess-123", BalanceQuery{})

	// An HTML page is a failing result, not a transport error.
	require.NoError(t, err)
	assert.False(t, result.Status.OK())
	assert.True(t, result.Synthesized)

	var envelope struct {
		Status string `json:"Status"`
		Error  string `json:"Error"`
	}
	require.NoError(t, json.Unmarshal(result.Raw, &envelope))
	assert.Equal(t, "500", envelope.Status)
	assert.NotEmpty(t, envelope.Error)
}

func TestClient_InventoryBalance_Unparseable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("garbage"))
	})

	result, err := client.InventoryBalance(context.Background(), "sess-123", BalanceQuery{})

	require.NoError(t, err)
	assert.False(t, result.Status.OK())
	assert.True(t, result.Synthesized)
}

func TestClient_InventoryBalance_UpstreamRejection(t *testing.T) {
	upstream := `{"Status":"403","Error":{"Message":"invalid session"}}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstream))
	})

	result, err := client.InventoryBalance(context.Background(), "expired", BalanceQuery{})

	require.NoError(t, err)
	assert.False(t, result.Status.OK())
	assert.False(t, result.Synthesized)
	assert.Equal(t, upstream, string(result.Raw))
}

func TestClient_Endpoint(t *testing.T) {
	cfg := testEcountConfig()
	client := NewClient(cfg, NewStaticZoneResolver("ab"), noopLogger{})

	endpoint, err := client.endpoint(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://oapiAB.ecount.com", endpoint)
}

func TestClient_Endpoint_Sandbox(t *testing.T) {
	cfg := testEcountConfig()
	cfg.Sandbox = true
	client := NewClient(cfg, NewStaticZoneResolver("AB"), noopLogger{})

	endpoint, err := client.endpoint(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://sboapiAB.ecount.com", endpoint)
}
