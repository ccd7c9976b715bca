package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewRateLimiter(2).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "RATE_LIMIT") {
		t.Errorf("expected RATE_LIMIT code, got %s", rr.Body.String())
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
}
