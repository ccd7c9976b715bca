package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "missing header", header: "", wantOK: false},
		{name: "wrong scheme", header: "Basic abc123", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "valid", header: "Bearer tok-123", wantToken: "tok-123", wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}

			token, ok := BearerToken(c)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if token != tc.wantToken {
				t.Errorf("expected token %q, got %q", tc.wantToken, token)
			}
		})
	}
}
