package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/location-cleaner/app/models"
	"go.uber.org/zap"
)

// MemoryCacheService cache in-memory dùng LRU
type MemoryCacheService struct {
	cache  *lru.Cache[string, *models.LocationResult]
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCacheService tạo mới MemoryCacheService
func NewMemoryCacheService(size int, logger *zap.Logger) (*MemoryCacheService, error) {
	cache, err := lru.New[string, *models.LocationResult](size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &MemoryCacheService{cache: cache, logger: logger}, nil
}

// Get lấy kết quả từ LRU
func (mcs *MemoryCacheService) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	if result, found := mcs.cache.Get(key); found {
		mcs.hits.Add(1)
		mcs.logger.Debug("L1 cache hit", zap.String("key", key))
		return result, true, nil
	}
	mcs.misses.Add(1)
	return nil, false, nil
}

// Set lưu kết quả vào LRU
func (mcs *MemoryCacheService) Set(ctx context.Context, key string, result *models.LocationResult) error {
	mcs.cache.Add(key, result)
	return nil
}

func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	mcs.logger.Info("Đã clear L1 cache")
	return nil
}

// GetStats lấy thống kê LRU
func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := mcs.hits.Load(), mcs.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mcs.cache.Len()),
	}, nil
}

func (mcs *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return mcs.cache.Contains(key), nil
}

// GetTTL LRU không có TTL, trả về 0 nếu key tồn tại
func (mcs *MemoryCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	if !mcs.cache.Contains(key) {
		return 0, fmt.Errorf("key %q không tồn tại", key)
	}
	return 0, nil
}

func (mcs *MemoryCacheService) Close() error { return nil }
