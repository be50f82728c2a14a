package normalizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase viết hoa chữ cái đầu mỗi từ, phần còn lại viết thường
func TitleCase(s string) string {
	// cases.Caser is stateful, one per call.
	return cases.Title(language.English).String(CollapseSpaces(s))
}
