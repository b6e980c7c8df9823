package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestRespondWithError(t *testing.T) {
	r := gin.New()
	r.GET("/app", func(c *gin.Context) { respondWithError(c, apperrors.ErrGoalNotFound) })
	r.GET("/wrapped", func(c *gin.Context) {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk full")))
	})
	r.GET("/plain", func(c *gin.Context) { respondWithError(c, errors.New("boom")) })

	t.Run("app error uses its status", func(t *testing.T) {
		rec := doRequest(r, "GET", "/app", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})

	t.Run("internal detail is hidden", func(t *testing.T) {
		rec := doRequest(r, "GET", "/wrapped", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "disk full") {
			t.Errorf("internal error leaked: %s", rec.Body.String())
		}
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		rec := doRequest(r, "GET", "/plain", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
