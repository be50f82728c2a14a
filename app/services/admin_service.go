package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/location-cleaner/app/models"
	"go.uber.org/zap"
)

// AdminService service quản lý admin functions
type AdminService struct {
	locations *LocationService
	cache     ICacheService
	reviews   IReviewStore
	logger    *zap.Logger
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	Cache          *CacheStats            `json:"cache"`
	TotalProcessed int64                  `json:"total_processed"`
	TotalMatched   int64                  `json:"total_matched"`
	MatchRate      float64                `json:"match_rate"`
	TierCounts     map[string]int64       `json:"tier_counts"`
	ReviewQueue    int64                  `json:"review_queue"`
	Uptime         string                 `json:"uptime"`
	MemoryUsage    map[string]interface{} `json:"memory_usage"`
}

// NewAdminService tạo mới AdminService
func NewAdminService(locations *LocationService, cache ICacheService, reviews IReviewStore, logger *zap.Logger) *AdminService {
	return &AdminService{
		locations: locations,
		cache:     cache,
		reviews:   reviews,
		logger:    logger,
	}
}

// GetSystemStats lấy thống kê hệ thống
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	cacheStats, err := as.cache.GetStats(ctx)
	if err != nil {
		as.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
		cacheStats = &CacheStats{}
	}

	pending, err := as.reviews.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm review queue: %w", err)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	processing := as.locations.GetStats()
	matchRate := 0.0
	if processing.TotalProcessed > 0 {
		matchRate = float64(processing.TotalMatched) / float64(processing.TotalProcessed)
	}

	return &SystemStats{
		Cache:          cacheStats,
		TotalProcessed: processing.TotalProcessed,
		TotalMatched:   processing.TotalMatched,
		MatchRate:      matchRate,
		TierCounts:     processing.TierCounts,
		ReviewQueue:    pending,
		Uptime:         time.Since(as.locations.GetStartTime()).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
	}, nil
}

// InvalidateCache xóa toàn bộ cache kết quả
func (as *AdminService) InvalidateCache(ctx context.Context) error {
	if err := as.cache.Clear(ctx); err != nil {
		return fmt.Errorf("lỗi clear cache: %w", err)
	}
	as.logger.Info("Invalidate cache thành công")
	return nil
}

// ListUnmatched lấy review queue, trả về cả limit thực sự được áp dụng
func (as *AdminService) ListUnmatched(ctx context.Context, status string, limit int) ([]models.UnmatchedEntry, int, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	entries, err := as.reviews.List(ctx, status, limit)
	if err != nil {
		return nil, limit, err
	}
	return entries, limit, nil
}

// ResolveUnmatched đánh dấu input đã review
func (as *AdminService) ResolveUnmatched(ctx context.Context, input string) error {
	return as.reviews.Resolve(ctx, input)
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
