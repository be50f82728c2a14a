package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMinYear là năm nhỏ nhất được chấp nhận khi không cấu hình
const DefaultMinYear = 1900

const isoLayout = "2006-01-02"

// Accepted input layouts, tried in order. "2/1/2006" takes one- or two-digit
// day and month.
var layouts = []string{isoLayout, "2/1/2006"}

var ErrInvalidDate = errors.New("invalid date")

// YearTooEarlyError is returned for dates before the configured minimum year.
type YearTooEarlyError struct {
	Year    int
	MinYear int
}

func (e *YearTooEarlyError) Error() string {
	return fmt.Sprintf("year %d is below the minimum year %d", e.Year, e.MinYear)
}

func (e *YearTooEarlyError) Unwrap() error { return ErrInvalidDate }

// Clean parses YYYY-MM-DD or DD/MM/YYYY and returns YYYY-MM-DD. Calendar
// validity (leap years, month lengths) is checked by the parser.
func Clean(text string, minYear int) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidDate)
	}
	if minYear <= 0 {
		minYear = DefaultMinYear
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < minYear {
			return "", &YearTooEarlyError{Year: t.Year(), MinYear: minYear}
		}
		return t.Format(isoLayout), nil
	}

	return "", fmt.Errorf("%w: %q does not match YYYY-MM-DD or DD/MM/YYYY", ErrInvalidDate, text)
}
