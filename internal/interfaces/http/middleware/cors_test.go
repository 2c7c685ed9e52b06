package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCORSEngine(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(CORS(allowedOrigins))
	engine.POST("/api/ecount", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func TestCORS_Wildcard(t *testing.T) {
	engine := newCORSEngine([]string{"*"})

	req := httptest.NewRequest(http.MethodPost, "/api/ecount", nil)
	req.Header.Set("Origin", "https://sheet.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	engine := newCORSEngine([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/ecount", nil)
	req.Header.Set("Origin", "https://sheet.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_WhitelistedOrigin(t *testing.T) {
	engine := newCORSEngine([]string{"https://allowed.example.com"})

	req := httptest.NewRequest(http.MethodPost, "/api/ecount", nil)
	req.Header.Set("Origin", "https://allowed.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "https://allowed.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	engine := newCORSEngine([]string{"https://allowed.example.com"})

	req := httptest.NewRequest(http.MethodPost, "/api/ecount", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
