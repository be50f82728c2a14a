package controllers

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/config"
	"github.com/location-cleaner/app/models"
	"github.com/location-cleaner/app/responses"
	"github.com/location-cleaner/app/services"
	"github.com/location-cleaner/internal/province"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cache, err := services.NewMemoryCacheService(100, zap.NewNop())
	require.NoError(t, err)
	return setupRouterWithCache(t, cache)
}

func setupRouterWithCache(t *testing.T, cache services.ICacheService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	reviews := services.NewMemoryReviewStore()

	identifier := province.NewIdentifier(province.DefaultConfig(), logger)
	locationService := services.NewLocationService(identifier, cache, reviews, config.Default(), logger)
	adminService := services.NewAdminService(locationService, cache, reviews, logger)

	lc := NewLocationController(locationService, logger)
	ac := NewAdminController(adminService, logger)

	router := gin.New()
	router.POST("/v1/regions/identify", lc.IdentifyRegion)
	router.GET("/v1/regions", lc.ListRegions)
	router.POST("/v1/locations/clean", lc.CleanLocation)
	router.POST("/v1/locations/jobs", lc.BatchClean)
	router.GET("/v1/locations/jobs/:jobID/status", lc.GetJobStatus)
	router.GET("/v1/locations/jobs/:jobID/results", lc.GetJobResults)
	router.POST("/v1/dates/clean", lc.CleanDate)
	router.GET("/v1/health", lc.HealthCheck)
	router.POST("/v1/admin/cache/invalidate", ac.InvalidateCache)
	router.GET("/v1/admin/stats", ac.GetStats)
	router.GET("/v1/admin/unmatched", ac.ListUnmatched)
	router.POST("/v1/admin/unmatched/resolve", ac.ResolveUnmatched)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdentifyRegion(t *testing.T) {
	router := setupRouter(t)

	t.Run("match", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/regions/identify", `{"text":"n o v a s c o t i a"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp responses.IdentifyRegionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NS", resp.Code)
		assert.Equal(t, "Nova Scotia", resp.Name)
		assert.Equal(t, "no_spaces", resp.Tier)
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"no match", `{"text":"norht west terr"}`, http.StatusUnprocessableEntity, "NO_MATCH"},
		{"empty", `{"text":"   "}`, http.StatusBadRequest, "EMPTY_INPUT"},
		{"number", `{"text":123}`, http.StatusBadRequest, "INVALID_TYPE"},
		{"list", `{"text":["bc"]}`, http.StatusBadRequest, "INVALID_TYPE"},
		{"missing", `{}`, http.StatusBadRequest, "INVALID_TYPE"},
		{"malformed", `{"text":`, http.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/v1/regions/identify", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp responses.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
		})
	}
}

func TestIdentifyRegion_NoMatchSuggestion(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/regions/identify", `{"text":"norht west terr"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Details struct {
			Suggestion province.Suggestion `json:"suggestion"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, province.NT, resp.Details.Suggestion.Code)
}

func TestListRegions(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/v1/regions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.RegionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 13, resp.Total)
	assert.Equal(t, province.AB, resp.Regions[0].Code)
}

func TestCleanLocation(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/locations/clean", `{"location":"my ciTy, BC","options":{"use_cache":true}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.CleanLocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "My City, BC", resp.Result.Cleaned)
	assert.False(t, resp.CacheHit)

	w = doJSON(router, http.MethodPost, "/v1/locations/clean", `{"location":"My City, BC","options":{"use_cache":true}}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CacheHit)

	w = doJSON(router, http.MethodPost, "/v1/locations/clean", `{"location":"BC"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_MUNICIPALITY")

	w = doJSON(router, http.MethodPost, "/v1/locations/clean", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanDate(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/dates/clean", `{"date":"15/05/1990"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.CleanDateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1990-05-15", resp.Date)

	w = doJSON(router, http.MethodPost, "/v1/dates/clean", `{"date":"1850-05-15"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_DATE")
}

func TestBatchJob(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/locations/jobs", `{"locations":["Toronto ON","Somewhere, xx"]}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var created responses.BatchCleanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.JobID)
	assert.Equal(t, 2, created.TotalLocations)

	statusPath := "/v1/locations/jobs/" + created.JobID + "/status"
	require.Eventually(t, func() bool {
		w := doJSON(router, http.MethodGet, statusPath, "")
		var status responses.JobStatusResponse
		return json.Unmarshal(w.Body.Bytes(), &status) == nil && status.Status == "done"
	}, 5*time.Second, 10*time.Millisecond)

	t.Run("ndjson", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/v1/locations/jobs/"+created.JobID+"/results?format=ndjson", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)

		var first models.LocationResult
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "Toronto, ON", first.Cleaned)
	})

	t.Run("ndjson gzip", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/v1/locations/jobs/"+created.JobID+"/results?format=ndjson&gzip=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(body), "\n"))
		assert.Contains(t, string(body), `"status":"unmatched"`)
	})

	t.Run("unknown job", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/v1/locations/jobs/missing/status", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "JOB_NOT_FOUND")
	})

	t.Run("empty batch", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/locations/jobs", `{"locations":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	router := setupRouter(t)

	doJSON(router, http.MethodPost, "/v1/regions/identify", `{"text":"not a province"}`)
	doJSON(router, http.MethodPost, "/v1/regions/identify", `{"text":"bc"}`)

	w := doJSON(router, http.MethodGet, "/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats responses.SystemStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalProcessed)
	assert.Equal(t, int64(1), stats.TotalMatched)
	assert.Equal(t, int64(1), stats.ReviewQueue)
	assert.Equal(t, int64(1), stats.TierCounts["primary"])

	w = doJSON(router, http.MethodGet, "/v1/admin/unmatched?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list responses.UnmatchedListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "not a province", list.Entries[0].Input)
	assert.Equal(t, 100, list.Limit)

	for query, want := range map[string]int{"limit=5000": 100, "limit=abc": 100, "limit=0": 100, "limit=25": 25} {
		w = doJSON(router, http.MethodGet, "/v1/admin/unmatched?"+query, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Equal(t, want, list.Limit, query)
	}

	w = doJSON(router, http.MethodPost, "/v1/admin/unmatched/resolve", `{"input":"not a province"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/v1/admin/unmatched/resolve", `{"input":"never seen"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ENTRY_NOT_FOUND")

	w = doJSON(router, http.MethodPost, "/v1/admin/cache/invalidate", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.HealthCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

// blockingCache giữ Get cho tới khi release đóng, để job batch dừng ở trạng thái running
type blockingCache struct {
	*services.MemoryCacheService
	release chan struct{}
}

func (bc *blockingCache) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	<-bc.release
	return bc.MemoryCacheService.Get(ctx, key)
}

func TestGetJobResults_NotReady(t *testing.T) {
	memory, err := services.NewMemoryCacheService(10, zap.NewNop())
	require.NoError(t, err)
	cache := &blockingCache{MemoryCacheService: memory, release: make(chan struct{})}
	router := setupRouterWithCache(t, cache)

	w := doJSON(router, http.MethodPost, "/v1/locations/jobs", `{"locations":["Toronto ON"],"options":{"use_cache":true}}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var created responses.BatchCleanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	resultsPath := "/v1/locations/jobs/" + created.JobID + "/results"

	w = doJSON(router, http.MethodGet, resultsPath, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "JOB_NOT_READY", errResp.Error)

	close(cache.release)
	require.Eventually(t, func() bool {
		return doJSON(router, http.MethodGet, resultsPath, "").Code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: abc", services.ErrJobNotReady), http.StatusConflict, "JOB_NOT_READY"},
		{fmt.Errorf("%w: abc", services.ErrJobNotFound), http.StatusNotFound, "JOB_NOT_FOUND"},
		{&province.NoMatchError{Input: "xx"}, http.StatusUnprocessableEntity, "NO_MATCH"},
		{province.ErrEmptyInput, http.StatusBadRequest, "EMPTY_INPUT"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
