package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestCORSMiddleware tests CORS header setting
func TestCORSMiddleware(t *testing.T) {
	server, _ := newTestServer(t)

	// Create router with CORS middleware
	router := gin.New()
	router.Use(server.corsMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok"})
	})

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{
			name:           "GET request with CORS headers",
			method:         "GET",
			expectedStatus: 200,
		},
		{
			name:           "OPTIONS request should return 204",
			method:         "OPTIONS",
			expectedStatus: 204,
		},
	}

	expectedHeaders := map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers":  "Accept, Content-Type",
		"Access-Control-Expose-Headers": "Retry-After",
		"Access-Control-Max-Age":        "300",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			for header, expectedValue := range expectedHeaders {
				if actualValue := w.Header().Get(header); actualValue != expectedValue {
					t.Errorf("Expected header %s: %s, got %s", header, expectedValue, actualValue)
				}
			}
		})
	}
}

// TestLoggingMiddleware tests that requests pass through the logging middleware
func TestLoggingMiddleware(t *testing.T) {
	server, _ := newTestServer(t)

	router := gin.New()
	router.Use(server.loggingMiddleware())
	router.GET("/api/v1/tasks/:id", func(c *gin.Context) {
		c.String(200, "ok")
	})
	router.GET("/fail", func(c *gin.Context) {
		c.String(500, "fail")
	})

	for _, path := range []string{"/api/v1/tasks/x", "/fail"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Body.Len() == 0 {
			t.Errorf("GET %s: middleware swallowed the response body", path)
		}
	}
}
