package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/config"
	"github.com/location-cleaner/app/controllers"
	"github.com/location-cleaner/app/services"
	"github.com/location-cleaner/internal/province"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cache, err := services.NewMemoryCacheService(10, logger)
	require.NoError(t, err)
	reviews := services.NewMemoryReviewStore()

	locationService := services.NewLocationService(province.NewIdentifier(province.DefaultConfig(), logger), cache, reviews, config.Default(), logger)
	adminService := services.NewAdminService(locationService, cache, reviews, logger)

	router := gin.New()
	SetupAllRoutes(router,
		controllers.NewLocationController(locationService, logger),
		controllers.NewAdminController(adminService, logger))
	return router
}

func TestSetupAllRoutes(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/docs", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodGet, "/v1/health", http.StatusOK},
		{http.MethodGet, "/v1/regions", http.StatusOK},
		{http.MethodGet, "/v1/admin/stats", http.StatusOK},
		{http.MethodGet, "/v1/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 8)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
