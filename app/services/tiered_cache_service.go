package services

import (
	"context"
	"errors"
	"time"

	"github.com/location-cleaner/app/models"
	"go.uber.org/zap"
)

// TieredCacheService kết hợp LRU in-memory (L1) + Redis (L2)
type TieredCacheService struct {
	l1     *MemoryCacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewTieredCacheService tạo mới tiered cache. l2 có thể là Redis hoặc bất kỳ ICacheService nào.
func NewTieredCacheService(l1 *MemoryCacheService, l2 ICacheService, logger *zap.Logger) *TieredCacheService {
	return &TieredCacheService{l1: l1, l2: l2, logger: logger}
}

// Get lấy kết quả (L1 trước, L2 sau). Hit ở L2 được đưa lên L1.
func (tcs *TieredCacheService) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	if result, found, _ := tcs.l1.Get(ctx, key); found {
		return result, true, nil
	}

	result, found, err := tcs.l2.Get(ctx, key)
	if err != nil {
		tcs.logger.Warn("Lỗi L2 cache, coi như miss", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	_ = tcs.l1.Set(ctx, key, result)
	tcs.logger.Debug("L2 cache hit", zap.String("key", key))
	return result, true, nil
}

// Set lưu vào cả L1 và L2
func (tcs *TieredCacheService) Set(ctx context.Context, key string, result *models.LocationResult) error {
	_ = tcs.l1.Set(ctx, key, result)
	if err := tcs.l2.Set(ctx, key, result); err != nil {
		tcs.logger.Warn("Lỗi lưu vào L2 cache", zap.Error(err))
		return err
	}
	return nil
}

func (tcs *TieredCacheService) Delete(ctx context.Context, key string) error {
	return errors.Join(tcs.l1.Delete(ctx, key), tcs.l2.Delete(ctx, key))
}

func (tcs *TieredCacheService) Clear(ctx context.Context) error {
	return errors.Join(tcs.l1.Clear(ctx), tcs.l2.Clear(ctx))
}

// GetStats trả về thống kê L1, hit rate tính trên cả hai tầng
func (tcs *TieredCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1, err := tcs.l1.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	l2, err := tcs.l2.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	// Một miss ở L1 là một lần hỏi L2
	hits := l1.TotalHits + l2.TotalHits
	misses := l2.TotalMiss
	return &CacheStats{
		Backend:    "tiered(" + l1.Backend + "+" + l2.Backend + ")",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: l2.TotalItems,
	}, nil
}

func (tcs *TieredCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := tcs.l1.Exists(ctx, key); ok {
		return true, nil
	}
	return tcs.l2.Exists(ctx, key)
}

func (tcs *TieredCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return tcs.l2.GetTTL(ctx, key)
}

func (tcs *TieredCacheService) Close() error {
	return errors.Join(tcs.l1.Close(), tcs.l2.Close())
}
