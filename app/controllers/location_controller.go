package controllers

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/models"
	"github.com/location-cleaner/app/requests"
	"github.com/location-cleaner/app/responses"
	"github.com/location-cleaner/app/services"
	"github.com/location-cleaner/internal/province"
	"go.uber.org/zap"
)

// LocationController controller xử lý các request identify/clean
type LocationController struct {
	locationService *services.LocationService
	logger          *zap.Logger
}

// NewLocationController tạo mới LocationController
func NewLocationController(locationService *services.LocationService, logger *zap.Logger) *LocationController {
	return &LocationController{
		locationService: locationService,
		logger:          logger,
	}
}

// IdentifyRegion identify mã tỉnh/lãnh thổ từ text
func (lc *LocationController) IdentifyRegion(c *gin.Context) {
	var req requests.IdentifyRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	match, err := lc.locationService.IdentifyRegion(c.Request.Context(), req.Text)
	if err != nil {
		var details interface{}
		if text, ok := req.Text.(string); ok && errors.Is(err, province.ErrNoMatch) {
			if s, found := lc.locationService.Suggest(text); found {
				details = gin.H{"suggestion": s}
			}
		}
		writeError(c, err, details)
		return
	}

	resp := responses.IdentifyRegionResponse{
		Code:  string(match.Code),
		Tier:  string(match.Tier),
		Score: match.Score,
	}
	if region, ok := lc.locationService.Regions().Lookup(match.Code); ok {
		resp.Name = region.Name
	}
	c.JSON(http.StatusOK, resp)
}

// ListRegions trả về dictionary
func (lc *LocationController) ListRegions(c *gin.Context) {
	regions := lc.locationService.Regions()
	c.JSON(http.StatusOK, responses.RegionListResponse{
		Regions: regions,
		Total:   len(regions),
	})
}

// CleanLocation clean một location "municipality, region"
func (lc *LocationController) CleanLocation(c *gin.Context) {
	var req requests.CleanLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	startTime := time.Now()

	result, cacheHit, err := lc.locationService.CleanLocation(c.Request.Context(), req.Location, req.Options)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.CleanLocationResponse{
		Result:           *result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// CleanDate chuẩn hóa ngày
func (lc *LocationController) CleanDate(c *gin.Context) {
	var req requests.CleanDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	cleaned, err := lc.locationService.CleanDate(req.Date, req.MinYear)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.CleanDateResponse{Raw: req.Date, Date: cleaned})
}

// BatchClean tạo job clean hàng loạt
func (lc *LocationController) BatchClean(c *gin.Context) {
	var req requests.BatchCleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	jobID, err := lc.locationService.StartBatchJob(req.Locations, req.Options)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusAccepted, responses.BatchCleanResponse{
		JobID:            jobID,
		EstimatedSeconds: lc.locationService.EstimateBatchProcessingTime(len(req.Locations)),
		TotalLocations:   len(req.Locations),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (lc *LocationController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")

	status, err := lc.locationService.GetJobStatus(jobID)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     jobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Matched:   status.Matched,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults lấy kết quả job, hỗ trợ NDJSON + gzip
func (lc *LocationController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")

	results, err := lc.locationService.GetJobResults(jobID)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	if c.Query("format") == "ndjson" {
		lc.streamNDJSON(c, results, c.Query("gzip") == "1")
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Lấy kết quả thành công",
		Data:      results,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// streamNDJSON stream kết quả theo format NDJSON với hỗ trợ gzip
func (lc *LocationController) streamNDJSON(c *gin.Context, results []*models.LocationResult, gzipEnabled bool) {
	c.Header("Content-Type", "application/x-ndjson")

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}
	c.Status(http.StatusOK)

	encoder := json.NewEncoder(writer)
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			lc.logger.Error("Lỗi encode NDJSON", zap.Error(err))
			return
		}
	}
	writer.Flush()
}

// gzipResponseWriter wrapper cho gzip writer
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzWriter.Write([]byte(s))
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	w.ResponseWriter.Flush()
}

// HealthCheck kiểm tra sức khỏe service
func (lc *LocationController) HealthCheck(c *gin.Context) {
	uptime := time.Since(lc.locationService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.Round(time.Second).String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"region_identifier": "healthy",
		},
	})
}
