package normalizer

import (
	"strings"
)

// CollapseSpaces gom các khoảng trắng liên tiếp thành một và cắt hai đầu
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeInput prepares free text for region matching: whitespace runs
// become single spaces, the ends are trimmed and the text is lowercased.
func NormalizeInput(s string) string {
	return strings.ToLower(CollapseSpaces(s))
}
