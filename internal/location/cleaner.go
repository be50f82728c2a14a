package location

import (
	"errors"
	"strings"

	"github.com/location-cleaner/internal/normalizer"
	"github.com/location-cleaner/internal/province"
	"go.uber.org/zap"
)

// maxRegionWords is the longest trailing word run tried as the region part
// ("newfoundland and labrador" has three words, "north west territories" too).
const maxRegionWords = 4

var ErrMissingMunicipality = errors.New("location has no municipality")

// Location kết quả clean "municipality, region"
type Location struct {
	Raw          string        `json:"raw"`
	Municipality string        `json:"municipality"`
	Region       province.Code `json:"region"`
	Tier         province.Tier `json:"tier"`
	Score        int           `json:"score"`
}

// String formats the location as "Municipality, XX".
func (l Location) String() string {
	return l.Municipality + ", " + string(l.Region)
}

// Cleaner splits a compound location, identifies the region part and tidies
// the municipality part.
type Cleaner struct {
	identifier *province.Identifier
	logger     *zap.Logger
}

// NewCleaner tạo mới Cleaner
func NewCleaner(identifier *province.Identifier, logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{identifier: identifier, logger: logger}
}

// Clean turns "my ciTy british columbia" or "My City, BC" into
// {Municipality: "My City", Region: BC}.
func (c *Cleaner) Clean(text string) (*Location, error) {
	collapsed := normalizer.CollapseSpaces(text)
	if collapsed == "" {
		return nil, province.ErrEmptyInput
	}

	municipality, region := c.split(collapsed)
	if municipality == "" {
		return nil, ErrMissingMunicipality
	}

	match, err := c.identifier.Match(region)
	if err != nil {
		c.logger.Debug("Region part not identified",
			zap.String("raw", text),
			zap.String("region", region),
			zap.Error(err))
		return nil, err
	}

	return &Location{
		Raw:          text,
		Municipality: normalizer.TitleCase(normalizer.ExpandCompass(municipality)),
		Region:       match.Code,
		Tier:         match.Tier,
		Score:        match.Score,
	}, nil
}

// split separates the municipality from the region. With a comma the region
// is taken from the words after the last comma; without one, from the trailing
// words, always leaving one word for the municipality. Among the candidate
// runs the one with the best primary score wins, the longer run on ties.
func (c *Cleaner) split(text string) (municipality, region string) {
	var prefix string
	words := strings.Fields(text)
	minStart := 1

	if i := strings.LastIndex(text, ","); i >= 0 {
		prefix = strings.TrimRight(strings.TrimSpace(text[:i]), ", ")
		words = strings.Fields(text[i+1:])
		if prefix != "" {
			minStart = 0
		}
	}

	maxWords := min(maxRegionWords, len(words)-minStart)
	if maxWords < 1 {
		return joinParts(prefix, nil), strings.Join(words, " ")
	}

	bestK, bestScore := 1, -1
	for k := 1; k <= maxWords; k++ {
		candidate := strings.Join(words[len(words)-k:], " ")
		if score := c.identifier.Primary(candidate).Score; score >= bestScore {
			bestK, bestScore = k, score
		}
	}

	cut := len(words) - bestK
	return joinParts(prefix, words[:cut]), strings.Join(words[cut:], " ")
}

func joinParts(prefix string, rest []string) string {
	tail := strings.Join(rest, " ")
	switch {
	case prefix == "":
		return tail
	case tail == "":
		return prefix
	default:
		return prefix + ", " + tail
	}
}
