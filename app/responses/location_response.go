package responses

import (
	"github.com/location-cleaner/app/models"
	"github.com/location-cleaner/internal/province"
)

// IdentifyRegionResponse response identify tỉnh/lãnh thổ
type IdentifyRegionResponse struct {
	Code  string `json:"code"`  // Mã hai chữ cái
	Name  string `json:"name"`  // Tên đầy đủ
	Tier  string `json:"tier"`  // Tier đã chấp nhận
	Score int    `json:"score"` // Điểm của tier
}

// RegionListResponse danh sách dictionary
type RegionListResponse struct {
	Regions []province.Region `json:"regions"`
	Total   int               `json:"total"`
}

// CleanLocationResponse response clean location đơn lẻ
type CleanLocationResponse struct {
	Result           models.LocationResult `json:"result"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"` // Thời gian xử lý (ms)
	CacheHit         bool                  `json:"cache_hit"`          // Có hit cache không
}

// CleanDateResponse response chuẩn hóa ngày
type CleanDateResponse struct {
	Raw  string `json:"raw"`
	Date string `json:"date"`
}

// BatchCleanResponse response clean hàng loạt
type BatchCleanResponse struct {
	JobID            string `json:"job_id"`            // ID của job
	EstimatedSeconds int    `json:"estimated_seconds"` // Thời gian ước tính (giây)
	TotalLocations   int    `json:"total_locations"`   // Tổng số location
	Message          string `json:"message"`           // Thông báo
}

// JobStatusResponse response trạng thái job
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`    // ID của job
	Status    string  `json:"status"`    // Trạng thái job
	Progress  float64 `json:"progress"`  // Tiến độ (0.0 - 1.0)
	Processed int     `json:"processed"` // Số location đã xử lý
	Matched   int     `json:"matched"`   // Số location match
	Total     int     `json:"total"`     // Tổng số location
	Message   string  `json:"message"`   // Thông báo
}

// JobStatus constants
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// UnmatchedListResponse danh sách input chưa match
type UnmatchedListResponse struct {
	Entries []models.UnmatchedEntry `json:"entries"`
	Total   int                     `json:"total"`
	Limit   int                     `json:"limit"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success   bool        `json:"success"`        // Có thành công không
	Message   string      `json:"message"`        // Thông báo
	Data      interface{} `json:"data,omitempty"` // Dữ liệu
	Timestamp string      `json:"timestamp"`      // Thời gian
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}

// SystemStatsResponse response thống kê hệ thống
type SystemStatsResponse struct {
	Cache          interface{}            `json:"cache"`           // Thống kê cache
	TotalProcessed int64                  `json:"total_processed"` // Tổng số đã xử lý
	TotalMatched   int64                  `json:"total_matched"`   // Tổng số match
	MatchRate      float64                `json:"match_rate"`      // Tỷ lệ match
	TierCounts     map[string]int64       `json:"tier_counts"`     // Số lần mỗi tier chấp nhận
	ReviewQueue    int64                  `json:"review_queue"`    // Số input chờ review
	Uptime         string                 `json:"uptime"`          // Thời gian hoạt động
	MemoryUsage    map[string]interface{} `json:"memory_usage"`    // Sử dụng memory
}
