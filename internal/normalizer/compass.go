package normalizer

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/compass.yaml
var compassYAML []byte

// CompassRules chứa rules hướng (compass) được load từ YAML
type CompassRules struct {
	Compounds     map[string]string `yaml:"compounds"`
	Abbreviations map[string]string `yaml:"abbreviations"`

	directions map[string]bool
}

var compass = mustLoadCompassRules()

func mustLoadCompassRules() *CompassRules {
	rules, err := LoadCompassRules(compassYAML)
	if err != nil {
		panic(err)
	}
	return rules
}

// LoadCompassRules decode rules từ YAML
func LoadCompassRules(data []byte) (*CompassRules, error) {
	rules := &CompassRules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, err
	}

	rules.directions = make(map[string]bool)
	for _, full := range rules.Abbreviations {
		rules.directions[full] = true
	}
	for _, full := range rules.Compounds {
		rules.directions[full] = true
	}
	return rules, nil
}

// Expand lowercases s, merges two-word directions ("south east"), expands
// abbreviations ("nw") and drops a direction that repeats the word before it,
// so "w west city" becomes "west city".
func (r *CompassRules) Expand(s string) string {
	words := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(words))

	for i := 0; i < len(words); i++ {
		w := words[i]
		if i+1 < len(words) {
			if merged, ok := r.Compounds[w+" "+words[i+1]]; ok {
				w = merged
				i++
			}
		}
		if full, ok := r.Abbreviations[w]; ok {
			w = full
		}
		if n := len(out); n > 0 && out[n-1] == w && r.directions[w] {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// ExpandCompass dùng rules embed mặc định
func ExpandCompass(s string) string {
	return compass.Expand(s)
}
