package handlers

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

func TestHealthHandler_Healthcheck(t *testing.T) {
	tests := []struct {
		name     string
		ready    bool
		status   int
		expected string
	}{
		{"store loaded", true, http.StatusOK, `{"status":"ok"}`},
		{"store not loaded", false, http.StatusServiceUnavailable, `{"status":"unavailable","reason":"store not loaded"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(func() bool { return tt.ready })
			router := gin.New()
			router.GET("/healthcheck", handler.Healthcheck)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.expected, w.Body.String())
		})
	}
}
