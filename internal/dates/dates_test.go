package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "1990-05-15", "1990-05-15"},
		{"day first", "15/05/1990", "1990-05-15"},
		{"single digits", "5/6/2001", "2001-06-05"},
		{"leap day", "29/02/2020", "2020-02-29"},
		{"surrounding spaces", "  2020-01-01 ", "2020-01-01"},
		{"minimum year", "1900-01-01", "1900-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.input, DefaultMinYear)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  "},
		{"not a date", "yesterday"},
		{"not a leap year", "29/02/2021"},
		{"month out of range", "2020-13-01"},
		{"us order", "05/15/1990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Clean(tt.input, DefaultMinYear)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestClean_YearTooEarly(t *testing.T) {
	_, err := Clean("1850-05-15", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)

	var early *YearTooEarlyError
	require.ErrorAs(t, err, &early)
	assert.Equal(t, 1850, early.Year)
	assert.Equal(t, DefaultMinYear, early.MinYear)
	assert.Contains(t, err.Error(), "1850")
	assert.Contains(t, err.Error(), "minimum")

	got, err := Clean("1850-05-15", 1800)
	require.NoError(t, err)
	assert.Equal(t, "1850-05-15", got)
}
