package models

// LocationResult kết quả clean một location
type LocationResult struct {
	Raw          string `json:"raw"`                    // Chuỗi gốc
	Cleaned      string `json:"cleaned,omitempty"`      // "Municipality, XX"
	Municipality string `json:"municipality,omitempty"` // Tên municipality đã chuẩn hóa
	Region       string `json:"region,omitempty"`       // Mã tỉnh/lãnh thổ
	RegionName   string `json:"region_name,omitempty"`  // Tên đầy đủ
	Tier         string `json:"tier,omitempty"`         // Tier đã chấp nhận
	Score        int    `json:"score"`                  // Điểm của tier
	Status       string `json:"status"`                 // matched, unmatched, invalid
	Error        string `json:"error,omitempty"`        // Lỗi nếu có
}

// Status constants
const (
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
	StatusInvalid   = "invalid"
)

// IsMatched kiểm tra result đã match chưa
func (r *LocationResult) IsMatched() bool {
	return r.Status == StatusMatched
}
