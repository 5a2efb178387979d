package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(handler *PackageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/packages", handler.CreatePackage)
	engine.GET("/packages/:id", handler.GetPackage)
	engine.PATCH("/packages/:id/status", handler.UpdatePackageStatus)
	return engine
}

func TestPackageHandler_CreatePackage_InvalidBody(t *testing.T) {
	handler := NewPackageHandler(nil, nil, nil, nil, nil, nil)
	router := newTestRouter(handler)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{not json"},
		{name: "missing name", body: `{"duration_days": 30, "price": "100"}`},
		{name: "zero duration", body: `{"name": "Monthly", "duration_days": 0, "price": "100"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/packages", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestPackageHandler_GetPackage_InvalidID(t *testing.T) {
	handler := NewPackageHandler(nil, nil, nil, nil, nil, nil)
	router := newTestRouter(handler)

	for _, id := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/packages/"+id, nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestPackageHandler_UpdatePackageStatus_MissingActive(t *testing.T) {
	handler := NewPackageHandler(nil, nil, nil, nil, nil, nil)
	router := newTestRouter(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/packages/1/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
