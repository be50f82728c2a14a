package location

import (
	"errors"
	"testing"

	"github.com/location-cleaner/internal/province"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCleaner() *Cleaner {
	return NewCleaner(province.NewIdentifier(province.DefaultConfig(), nil), nil)
}

func TestClean(t *testing.T) {
	cleaner := newTestCleaner()

	tests := []struct {
		input        string
		municipality string
		region       province.Code
		tier         province.Tier
	}{
		{"my ciTy, BC", "My City", province.BC, province.TierPrimary},
		{"Quebec City Quebec", "Quebec City", province.QC, province.TierPrimary},
		{"City british columbia", "City", province.BC, province.TierPrimary},
		{"City Nfld. Lab.", "City", province.NL, province.TierPrimary},
		{"Toronto ON", "Toronto", province.ON, province.TierPrimary},
		{"St. John's Newfoundland and Labrador", "St. John's", province.NL, province.TierPrimary},
		{"Yellowknife, N.W.T.", "Yellowknife", province.NT, province.TierPrimary},
		{"NW City, BC", "Northwest City", province.BC, province.TierPrimary},
		{"W West City, BC", "West City", province.BC, province.TierPrimary},
		{"South east City, Ontario", "Southeast City", province.ON, province.TierPrimary},
		{"My, Comma, City British Columbia", "My, Comma, City", province.BC, province.TierPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, err := cleaner.Clean(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, loc.Raw)
			assert.Equal(t, tt.municipality, loc.Municipality)
			assert.Equal(t, tt.region, loc.Region)
			assert.Equal(t, tt.tier, loc.Tier)
		})
	}
}

func TestClean_Escalates(t *testing.T) {
	loc, err := newTestCleaner().Clean("Victoria, b.c.")
	require.NoError(t, err)

	assert.Equal(t, province.BC, loc.Region)
	assert.Equal(t, province.TierNoPeriods, loc.Tier)
	assert.Equal(t, "Victoria, BC", loc.String())
}

func TestClean_Errors(t *testing.T) {
	cleaner := newTestCleaner()

	tests := []struct {
		input string
		want  error
	}{
		{"", province.ErrEmptyInput},
		{"   ", province.ErrEmptyInput},
		{"BC", ErrMissingMunicipality},
		{", BC", ErrMissingMunicipality},
		{"My City", province.ErrNoMatch},
		{"My City, norht west terr", province.ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, err := cleaner.Clean(tt.input)
			assert.Nil(t, loc)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLocation_String(t *testing.T) {
	loc := Location{Municipality: "Quebec City", Region: province.QC}
	assert.Equal(t, "Quebec City, QC", loc.String())
}
