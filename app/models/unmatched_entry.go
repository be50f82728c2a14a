package models

import (
	"time"
)

// UnmatchedEntry input không identify được, chờ review dữ liệu
type UnmatchedEntry struct {
	Input          string     `bson:"input" json:"input"`                                         // Input gốc
	Normalized     string     `bson:"normalized" json:"normalized"`                               // Input đã normalize
	Reason         string     `bson:"reason" json:"reason"`                                       // Thông báo lỗi
	SuggestedCode  string     `bson:"suggested_code,omitempty" json:"suggested_code,omitempty"`   // Gợi ý gần nhất
	SuggestedScore float64    `bson:"suggested_score,omitempty" json:"suggested_score,omitempty"` // Điểm Jaro-Winkler
	Occurrences    int64      `bson:"occurrences" json:"occurrences"`                             // Số lần gặp
	Status         string     `bson:"status" json:"status"`                                       // Trạng thái review
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`                               // Lần đầu gặp
	LastSeenAt     time.Time  `bson:"last_seen_at" json:"last_seen_at"`                           // Lần cuối gặp
	ResolvedAt     *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`         // Thời gian resolve
}

// Review status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusResolved = "resolved"
)

// NewUnmatchedEntry tạo mới một UnmatchedEntry
func NewUnmatchedEntry(input, normalized, reason string) *UnmatchedEntry {
	now := time.Now()
	return &UnmatchedEntry{
		Input:       input,
		Normalized:  normalized,
		Reason:      reason,
		Occurrences: 1,
		Status:      ReviewStatusPending,
		CreatedAt:   now,
		LastSeenAt:  now,
	}
}
