package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/location-cleaner/app/config"
	"github.com/location-cleaner/app/models"
	"github.com/location-cleaner/app/requests"
	"github.com/location-cleaner/helpers/utils"
	"github.com/location-cleaner/internal/dates"
	"github.com/location-cleaner/internal/location"
	"github.com/location-cleaner/internal/normalizer"
	"github.com/location-cleaner/internal/province"
	"go.uber.org/zap"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrTooManyLocations = errors.New("số lượng location vượt quá giới hạn")
	ErrJobNotReady      = errors.New("job chưa hoàn thành")
)

// LocationService service xử lý logic identify/clean location
type LocationService struct {
	identifier *province.Identifier
	cleaner    *location.Cleaner
	cache      ICacheService
	reviews    IReviewStore
	cfg        config.CleanerCfg
	logger     *zap.Logger
	startTime  time.Time

	// Stats
	totalProcessed atomic.Int64
	totalMatched   atomic.Int64
	tierMu         sync.Mutex
	tierCounts     map[province.Tier]int64

	// Job management
	mu         sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.LocationResult
}

// JobStatus trạng thái của job
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Matched   int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLocationService tạo mới LocationService
func NewLocationService(identifier *province.Identifier, cache ICacheService, reviews IReviewStore, cfg config.CleanerCfg, logger *zap.Logger) *LocationService {
	return &LocationService{
		identifier: identifier,
		cleaner:    location.NewCleaner(identifier, logger),
		cache:      cache,
		reviews:    reviews,
		cfg:        cfg,
		logger:     logger,
		startTime:  time.Now(),
		tierCounts: make(map[province.Tier]int64),
		jobs:       make(map[string]*JobStatus),
		jobResults: make(map[string][]*models.LocationResult),
	}
}

// Regions trả về dictionary đang dùng
func (ls *LocationService) Regions() province.Dictionary {
	return ls.identifier.Dictionary()
}

// IdentifyRegion identify một giá trị bất kỳ (type guard trước)
func (ls *LocationService) IdentifyRegion(ctx context.Context, value any) (*province.Match, error) {
	text, ok := value.(string)
	if !ok {
		return nil, &province.InvalidTypeError{Value: value}
	}

	ls.totalProcessed.Add(1)
	match, err := ls.identifier.Match(text)
	if err != nil {
		ls.recordFailure(ctx, text, err)
		return nil, err
	}

	ls.recordMatch(match.Tier)
	return match, nil
}

// Suggest gợi ý region gần nhất cho input không match
func (ls *LocationService) Suggest(text string) (province.Suggestion, bool) {
	return ls.identifier.Suggest(text)
}

// CleanLocation clean một location, trả về result và có hit cache hay không
func (ls *LocationService) CleanLocation(ctx context.Context, raw string, options requests.CleanOptions) (*models.LocationResult, bool, error) {
	key := normalizer.NormalizeInput(raw)

	if options.UseCache && key != "" {
		if cached, found, err := ls.cache.Get(ctx, key); err == nil && found {
			// key không phân biệt hoa thường, Raw phải là input của caller này
			result := *cached
			result.Raw = raw
			return &result, true, nil
		}
	}

	ls.totalProcessed.Add(1)
	loc, err := ls.cleaner.Clean(raw)
	if err != nil {
		ls.recordFailure(ctx, raw, err)
		return nil, false, err
	}
	ls.recordMatch(loc.Tier)

	result := ls.buildResult(loc)
	if options.UseCache {
		if err := ls.cache.Set(ctx, key, result); err != nil {
			ls.logger.Warn("Lỗi lưu cache", zap.Error(err))
		}
	}
	return result, false, nil
}

func (ls *LocationService) buildResult(loc *location.Location) *models.LocationResult {
	result := &models.LocationResult{
		Raw:          loc.Raw,
		Cleaned:      loc.String(),
		Municipality: loc.Municipality,
		Region:       string(loc.Region),
		Tier:         string(loc.Tier),
		Score:        loc.Score,
		Status:       models.StatusMatched,
	}
	if region, ok := ls.identifier.Dictionary().Lookup(loc.Region); ok {
		result.RegionName = region.Name
	}
	return result
}

// failedResult dùng trong batch, khi lỗi không làm hỏng cả job
func failedResult(raw string, err error) *models.LocationResult {
	status := models.StatusInvalid
	if errors.Is(err, province.ErrNoMatch) {
		status = models.StatusUnmatched
	}
	return &models.LocationResult{Raw: raw, Status: status, Error: err.Error()}
}

// CleanDate chuẩn hóa ngày về YYYY-MM-DD
func (ls *LocationService) CleanDate(text string, minYear int) (string, error) {
	if minYear <= 0 {
		minYear = ls.cfg.MinYear
	}
	return dates.Clean(text, minYear)
}

func (ls *LocationService) recordMatch(tier province.Tier) {
	ls.totalMatched.Add(1)
	ls.tierMu.Lock()
	ls.tierCounts[tier]++
	ls.tierMu.Unlock()
}

// recordFailure đưa input NoMatch vào review queue
func (ls *LocationService) recordFailure(ctx context.Context, raw string, err error) {
	if !errors.Is(err, province.ErrNoMatch) || ls.reviews == nil {
		return
	}

	entry := models.NewUnmatchedEntry(raw, normalizer.NormalizeInput(raw), err.Error())
	if s, ok := ls.identifier.Suggest(raw); ok {
		entry.SuggestedCode = string(s.Code)
		entry.SuggestedScore = s.Score
	}
	if recErr := ls.reviews.Record(ctx, entry); recErr != nil {
		ls.logger.Warn("Không thể lưu unmatched input", zap.String("input", raw), zap.Error(recErr))
	}
}

// EstimateBatchProcessingTime ước tính thời gian (giây), ~20k location/giây
func (ls *LocationService) EstimateBatchProcessingTime(count int) int {
	return count/20000 + 1
}

// StartBatchJob tạo job và xử lý trong background
func (ls *LocationService) StartBatchJob(locations []string, options requests.CleanOptions) (string, error) {
	if limit := ls.cfg.Batch.MaxItems; limit > 0 && len(locations) > limit {
		return "", fmt.Errorf("%w (%d)", ErrTooManyLocations, limit)
	}

	jobID := utils.GenerateUUID()
	now := time.Now()

	ls.mu.Lock()
	ls.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "pending",
		Total:     len(locations),
		Message:   "Đang chờ xử lý",
		CreatedAt: now,
		UpdatedAt: now,
	}
	ls.mu.Unlock()

	go ls.ProcessBatchJob(jobID, locations, options)
	return jobID, nil
}

// ProcessBatchJob xử lý job đồng bộ, cập nhật progress sau mỗi location
func (ls *LocationService) ProcessBatchJob(jobID string, locations []string, options requests.CleanOptions) {
	ctx := context.Background()

	ls.mu.Lock()
	job, exists := ls.jobs[jobID]
	if !exists {
		job = &JobStatus{JobID: jobID, Total: len(locations), CreatedAt: time.Now()}
		ls.jobs[jobID] = job
	}
	job.Status = "running"
	job.Message = "Đang xử lý..."
	job.UpdatedAt = time.Now()
	ls.mu.Unlock()

	results := make([]*models.LocationResult, len(locations))
	matched := 0
	for i, raw := range locations {
		result, _, err := ls.CleanLocation(ctx, raw, options)
		if err != nil {
			result = failedResult(raw, err)
		} else {
			matched++
		}
		results[i] = result

		ls.mu.Lock()
		job.Processed = i + 1
		job.Matched = matched
		job.Progress = float64(i+1) / float64(len(locations))
		job.UpdatedAt = time.Now()
		ls.mu.Unlock()
	}

	ls.mu.Lock()
	job.Status = "done"
	job.Progress = 1
	job.Message = "Hoàn thành xử lý"
	ls.jobResults[jobID] = results
	ls.mu.Unlock()

	ls.logger.Info("Batch job completed",
		zap.String("job_id", jobID),
		zap.Int("total_locations", len(locations)),
		zap.Int("matched", matched))
}

// GetJobStatus lấy bản sao trạng thái job
func (ls *LocationService) GetJobStatus(jobID string) (*JobStatus, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	job, exists := ls.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	copied := *job
	return &copied, nil
}

// GetJobResults lấy kết quả job đã xong
func (ls *LocationService) GetJobResults(jobID string) ([]*models.LocationResult, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	results, exists := ls.jobResults[jobID]
	if !exists {
		if _, pending := ls.jobs[jobID]; pending {
			return nil, fmt.Errorf("%w: %s", ErrJobNotReady, jobID)
		}
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return results, nil
}

// GetStartTime lấy thời gian khởi động service
func (ls *LocationService) GetStartTime() time.Time {
	return ls.startTime
}

// ProcessingStats thống kê xử lý
type ProcessingStats struct {
	TotalProcessed int64
	TotalMatched   int64
	TierCounts     map[string]int64
}

// GetStats lấy thống kê xử lý
func (ls *LocationService) GetStats() ProcessingStats {
	ls.tierMu.Lock()
	tiers := make(map[string]int64, len(ls.tierCounts))
	for t, n := range ls.tierCounts {
		tiers[string(t)] = n
	}
	ls.tierMu.Unlock()

	return ProcessingStats{
		TotalProcessed: ls.totalProcessed.Load(),
		TotalMatched:   ls.totalMatched.Load(),
		TierCounts:     tiers,
	}
}
