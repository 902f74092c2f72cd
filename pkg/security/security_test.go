package security

import (
	"mindcare_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(Secure())
	r.GET("/api/mood-entries/today", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/mood-entries/today", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = serve(r, http.MethodGet, "/metrics", nil)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/api/surveys", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/surveys", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(r, http.MethodGet, "/api/surveys", http.Header{"Origin": {"http://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/api/surveys", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiterPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(2, time.Hour))
	r.GET("/api/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/login", nil).Code)
	}
	w := serve(r, http.MethodGet, "/api/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestUserRateLimiterKeysByUser(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		switch c.GetHeader("X-User") {
		case "1":
			c.Set(util.ContextUserKey, &util.Claims{UserID: 1})
		case "2":
			c.Set(util.ContextUserKey, &util.Claims{UserID: 2})
		}
		c.Next()
	})
	r.Use(UserRateLimiter(1, time.Hour))
	r.POST("/api/goals", func(c *gin.Context) { c.Status(http.StatusCreated) })

	first := http.Header{"X-User": {"1"}}
	second := http.Header{"X-User": {"2"}}

	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/goals", first).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/goals", first).Code)
	// 同一 IP 的另一位用户有独立的额度
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/goals", second).Code)
}
