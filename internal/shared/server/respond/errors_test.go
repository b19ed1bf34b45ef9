package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesStandardBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Only application/pdf is allowed", gin.H{"contentType": "image/png"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "unsupported_media_type" || body.Error.Message == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	details, ok := body.Error.Details.(map[string]any)
	if !ok || details["contentType"] != "image/png" {
		t.Fatalf("unexpected details: %#v", body.Error.Details)
	}
}
