package requests

// IdentifyRegionRequest request identify tỉnh/lãnh thổ. Text là any để type
// guard phía service trả về INVALID_TYPE thay vì lỗi bind.
type IdentifyRegionRequest struct {
	Text any `json:"text"`
}

// CleanOptions tùy chọn clean
type CleanOptions struct {
	UseCache bool `json:"use_cache,omitempty"` // Có sử dụng cache không
}

// CleanLocationRequest request clean một location "municipality, region"
type CleanLocationRequest struct {
	Location string       `json:"location" binding:"required"`
	Options  CleanOptions `json:"options,omitempty"`
}

// BatchCleanRequest request clean hàng loạt
type BatchCleanRequest struct {
	Locations []string     `json:"locations" binding:"required,min=1"`
	Options   CleanOptions `json:"options,omitempty"`
}

// CleanDateRequest request chuẩn hóa ngày
type CleanDateRequest struct {
	Date    string `json:"date" binding:"required"`
	MinYear int    `json:"min_year,omitempty"`
}

// ResolveUnmatchedRequest đánh dấu input đã review
type ResolveUnmatchedRequest struct {
	Input string `json:"input" binding:"required"`
}
