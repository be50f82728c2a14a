package province

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer so sánh hai chuỗi, trả về điểm 0-100
type Scorer func(a, b string) int

// RegionScore is the best score any variant of a region reached.
type RegionScore struct {
	Code  Code `json:"code"`
	Score int  `json:"score"`
}

// ScoreMap holds one entry per region, in dictionary order.
type ScoreMap []RegionScore

// Get trả về điểm của một mã
func (m ScoreMap) Get(code Code) (int, bool) {
	for _, rs := range m {
		if rs.Code == code {
			return rs.Score, true
		}
	}
	return 0, false
}

// Ratio is a whole-string similarity based on Levenshtein distance, scaled by
// the longer operand. Empty operands score 0.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	dist := levenshtein.ComputeDistance(a, b)

	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// PartialRatio scores the shorter string against every window of the same
// length in the longer string and keeps the best.
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	needle := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		if s := Ratio(needle, string(long[i:i+len(short)])); s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}

// Score computes, for each region, the best similarity between input and any
// of its variants. A nil scorer means Ratio.
func Score(input string, dict Dictionary, scorer Scorer) ScoreMap {
	if scorer == nil {
		scorer = Ratio
	}

	scores := make(ScoreMap, 0, len(dict))
	for _, r := range dict {
		best := 0
		for _, v := range r.Variants {
			if s := scorer(input, v); s > best {
				best = s
			}
		}
		scores = append(scores, RegionScore{Code: r.Code, Score: best})
	}
	return scores
}
