package province

import (
	"github.com/location-cleaner/internal/normalizer"
	"github.com/xrash/smetrics"
)

// Suggestion gợi ý region gần nhất cho input không match
type Suggestion struct {
	Code    Code    `json:"code"`
	Variant string  `json:"variant"`
	Score   float64 `json:"score"`
}

// Suggest returns the variant closest to text by Jaro-Winkler similarity.
// It is a hint for reviewers of unmatched data and never an acceptance path:
// a suggestion says nothing about whether Identify would succeed.
func (id *Identifier) Suggest(text string) (Suggestion, bool) {
	input := normalizer.NormalizeInput(text)
	if input == "" {
		return Suggestion{}, false
	}

	var best Suggestion
	for _, r := range id.dict {
		for _, v := range r.Variants {
			score := smetrics.JaroWinkler(input, v, 0.7, 4)
			if score > best.Score {
				best = Suggestion{Code: r.Code, Variant: v, Score: score}
			}
		}
	}
	return best, best.Score > 0
}
