package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFlowSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		secret   string
		header   string
		wantCode int
	}{
		{name: "unset secret is a config error", secret: "", header: "anything", wantCode: http.StatusInternalServerError},
		{name: "missing header", secret: "s3cret", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong header", secret: "s3cret", header: "nope", wantCode: http.StatusUnauthorized},
		{name: "prefix of secret", secret: "s3cret", header: "s3c", wantCode: http.StatusUnauthorized},
		{name: "match", secret: "s3cret", header: "s3cret", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.POST("/trigger", FlowSecret(func() string { return tt.secret }), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
			if tt.header != "" {
				req.Header.Set(FlowSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestFlowSecretAllowsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.OPTIONS("/trigger", FlowSecret(func() string { return "" }), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/trigger", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestFlowSecretCallsExpectedPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := "first"
	r := gin.New()
	r.POST("/trigger", FlowSecret(func() string { return secret }), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(header string) int {
		req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
		req.Header.Set(FlowSecretHeader, header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("first"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	secret = "second"
	if code := send("first"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after the expected value changed, got %d", code)
	}
	if code := send("second"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
