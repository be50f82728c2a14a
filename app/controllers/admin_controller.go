package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/requests"
	"github.com/location-cleaner/app/responses"
	"github.com/location-cleaner/app/services"
	"go.uber.org/zap"
)

// AdminController controller xử lý các request admin
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// InvalidateCache xóa cache kết quả clean
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	startTime := time.Now()

	if err := ac.adminService.InvalidateCache(c.Request.Context()); err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Invalidate cache thành công",
		Data: map[string]interface{}{
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetStats lấy thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("Lỗi lấy stats", zap.Error(err))
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.SystemStatsResponse{
		Cache:          stats.Cache,
		TotalProcessed: stats.TotalProcessed,
		TotalMatched:   stats.TotalMatched,
		MatchRate:      stats.MatchRate,
		TierCounts:     stats.TierCounts,
		ReviewQueue:    stats.ReviewQueue,
		Uptime:         stats.Uptime,
		MemoryUsage:    stats.MemoryUsage,
	})
}

// ListUnmatched lấy danh sách input không identify được
func (ac *AdminController) ListUnmatched(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	status := c.Query("status")

	entries, applied, err := ac.adminService.ListUnmatched(c.Request.Context(), status, limit)
	if err != nil {
		ac.logger.Error("Lỗi lấy review queue", zap.Error(err))
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.UnmatchedListResponse{
		Entries: entries,
		Total:   len(entries),
		Limit:   applied,
	})
}

// ResolveUnmatched đánh dấu input đã review
func (ac *AdminController) ResolveUnmatched(c *gin.Context) {
	var req requests.ResolveUnmatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	if err := ac.adminService.ResolveUnmatched(c.Request.Context(), req.Input); err != nil {
		writeError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Đã resolve input",
		Data:      gin.H{"input": req.Input},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
