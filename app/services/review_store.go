package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/location-cleaner/app/models"
)

// IReviewStore lưu các input không identify được để team dữ liệu review
type IReviewStore interface {
	// Record thêm input mới hoặc tăng số lần gặp
	Record(ctx context.Context, entry *models.UnmatchedEntry) error

	// List lấy các entry theo status, mới nhất trước
	List(ctx context.Context, status string, limit int) ([]models.UnmatchedEntry, error)

	// Resolve đánh dấu input đã xử lý
	Resolve(ctx context.Context, input string) error

	// CountPending đếm số entry đang chờ
	CountPending(ctx context.Context) (int64, error)

	Close(ctx context.Context) error
}

// MemoryReviewStore review store in-memory, dùng khi không cấu hình MongoDB
type MemoryReviewStore struct {
	mu      sync.RWMutex
	entries map[string]*models.UnmatchedEntry
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{entries: make(map[string]*models.UnmatchedEntry)}
}

func (s *MemoryReviewStore) Record(ctx context.Context, entry *models.UnmatchedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[entry.Input]; ok {
		// giống $set bên MongoReviewStore: lý do và gợi ý lấy theo lần gặp mới nhất
		existing.Occurrences++
		existing.Reason = entry.Reason
		existing.SuggestedCode = entry.SuggestedCode
		existing.SuggestedScore = entry.SuggestedScore
		existing.LastSeenAt = entry.LastSeenAt
		existing.Status = models.ReviewStatusPending
		existing.ResolvedAt = nil
		return nil
	}

	copied := *entry
	s.entries[entry.Input] = &copied
	return nil
}

func (s *MemoryReviewStore) List(ctx context.Context, status string, limit int) ([]models.UnmatchedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UnmatchedEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastSeenAt.After(out[j].LastSeenAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryReviewStore) Resolve(ctx context.Context, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[input]
	if !ok {
		return ErrEntryNotFound
	}
	now := time.Now()
	e.Status = models.ReviewStatusResolved
	e.ResolvedAt = &now
	return nil
}

func (s *MemoryReviewStore) CountPending(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.entries {
		if e.Status == models.ReviewStatusPending {
			n++
		}
	}
	return n, nil
}

func (s *MemoryReviewStore) Close(ctx context.Context) error { return nil }
