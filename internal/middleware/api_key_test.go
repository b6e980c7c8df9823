package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupAPIKeyRouter(apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(APIKeyAuth(apiKey))
	r.POST("/goals", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/goals", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doKeyRequest(r *gin.Engine, method, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/goals", http.NoBody)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		method        string
		requestKey    string
		wantStatus    int
		wantErrorCode string
	}{
		{
			name:          "valid_api_key",
			configuredKey: "operator-key",
			method:        http.MethodPost,
			requestKey:    "operator-key",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "invalid_api_key",
			configuredKey: "operator-key",
			method:        http.MethodPost,
			requestKey:    "wrong-key",
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "INVALID_API_KEY",
		},
		{
			name:          "missing_api_key",
			configuredKey: "operator-key",
			method:        http.MethodPost,
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "INVALID_API_KEY",
		},
		{
			name:          "partial_match_rejected",
			configuredKey: "operator-key",
			method:        http.MethodPost,
			requestKey:    "operator",
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "INVALID_API_KEY",
		},
		{
			name:          "reads_need_no_key",
			configuredKey: "operator-key",
			method:        http.MethodGet,
			wantStatus:    http.StatusOK,
		},
		{
			name:       "disabled_when_unconfigured",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doKeyRequest(setupAPIKeyRouter(tt.configuredKey), tt.method, tt.requestKey)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			body := parseBody(t, rec)
			if tt.wantErrorCode != "" {
				errObj, ok := body["error"].(map[string]interface{})
				if !ok {
					t.Fatal("expected error object in response")
				}
				if code, _ := errObj["code"].(string); code != tt.wantErrorCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrorCode)
				}
				return
			}
			if status, _ := body["status"].(string); status != "ok" {
				t.Errorf("expected handler to be reached, got status = %q", status)
			}
		})
	}
}
