package province

import (
	"fmt"
	"strings"

	"github.com/location-cleaner/internal/normalizer"
	"go.uber.org/zap"
)

// Tier tên các bước escalation
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierNoPeriods Tier = "no_periods"
	TierNoSpaces  Tier = "no_spaces"
	TierPartial   Tier = "partial"
)

// Config ngưỡng chấp nhận cho identifier
type Config struct {
	// PrimaryThreshold is the minimum full-ratio score for a unique winner to
	// be accepted on the first pass.
	PrimaryThreshold int `yaml:"primary_threshold" json:"primary_threshold"`
	// Threshold must be exceeded on the period- and space-insensitive passes.
	// The partial pass uses the midpoint between Threshold and 100.
	Threshold int `yaml:"threshold" json:"threshold"`
}

func DefaultConfig() Config {
	return Config{PrimaryThreshold: 80, Threshold: 90}
}

// PartialThreshold is the bar a partial-substring winner has to exceed.
func (c Config) PartialThreshold() float64 {
	return float64(c.Threshold) + float64(100-c.Threshold)/2
}

// Match kết quả identify thành công
type Match struct {
	Input string `json:"input"`
	Code  Code   `json:"code"`
	Tier  Tier   `json:"tier"`
	Score int    `json:"score"`
}

type tier struct {
	name      Tier
	transform func(string) string
	dict      Dictionary
	scorer    Scorer
	accept    func(score int) bool
}

// Identifier maps normalized free text to a canonical code. It holds no
// mutable state and is safe for concurrent use.
type Identifier struct {
	cfg    Config
	dict   Dictionary
	tiers  []tier
	logger *zap.Logger
}

// NewIdentifier tạo identifier với dictionary mặc định
func NewIdentifier(cfg Config, logger *zap.Logger) *Identifier {
	return newIdentifier(base, cfg, logger)
}

// NewIdentifierWithDictionary validates dict and builds the escalation chain
// over a private copy of it.
func NewIdentifierWithDictionary(dict Dictionary, cfg Config, logger *zap.Logger) (*Identifier, error) {
	if err := dict.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dictionary: %w", err)
	}
	return newIdentifier(dict.Transform(func(s string) string { return s }), cfg, logger), nil
}

// newIdentifier derives the period- and space-stripped dictionaries once.
// dict must already be valid.
func newIdentifier(dict Dictionary, cfg Config, logger *zap.Logger) *Identifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultConfig()
	if cfg.PrimaryThreshold <= 0 {
		cfg.PrimaryThreshold = defaults.PrimaryThreshold
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaults.Threshold
	}

	identity := func(s string) string { return s }
	partialBar := cfg.PartialThreshold()

	return &Identifier{
		cfg:    cfg,
		dict:   dict,
		logger: logger,
		tiers: []tier{
			{
				name:      TierPrimary,
				transform: identity,
				dict:      dict,
				scorer:    Ratio,
				accept:    func(score int) bool { return score >= cfg.PrimaryThreshold },
			},
			{
				name:      TierNoPeriods,
				transform: removePeriods,
				dict:      dict.Transform(removePeriods),
				scorer:    Ratio,
				accept:    func(score int) bool { return score > cfg.Threshold },
			},
			{
				name:      TierNoSpaces,
				transform: removeSpaces,
				dict:      dict.Transform(removeSpaces),
				scorer:    Ratio,
				accept:    func(score int) bool { return score > cfg.Threshold },
			},
			{
				name:      TierPartial,
				transform: identity,
				dict:      dict,
				scorer:    PartialRatio,
				accept:    func(score int) bool { return float64(score) > partialBar },
			},
		},
	}
}

func removePeriods(s string) string { return strings.ReplaceAll(s, ".", "") }

func removeSpaces(s string) string { return strings.ReplaceAll(s, " ", "") }

func (id *Identifier) Config() Config { return id.cfg }

// Dictionary trả về bản sao dictionary đang dùng
func (id *Identifier) Dictionary() Dictionary {
	return id.dict.Transform(func(s string) string { return s })
}

// Primary scores text against the unmodified dictionary with the full ratio
// and reduces it, without escalating.
func (id *Identifier) Primary(text string) Decision {
	return Reduce(Score(normalizer.NormalizeInput(text), id.dict, Ratio))
}

// Identify trả về mã tỉnh/lãnh thổ cho text
func (id *Identifier) Identify(text string) (Code, error) {
	m, err := id.Match(text)
	if err != nil {
		return "", err
	}
	return m.Code, nil
}

// IdentifyValue is Identify behind a type guard for values of unknown type,
// e.g. cells decoded from JSON or CSV.
func (id *Identifier) IdentifyValue(v any) (Code, error) {
	text, ok := v.(string)
	if !ok {
		return "", &InvalidTypeError{Value: v}
	}
	return id.Identify(text)
}

// Match runs the escalation chain and reports which tier accepted the input.
// Tiers that do not reach their acceptance condition fall through silently.
func (id *Identifier) Match(text string) (*Match, error) {
	input := normalizer.NormalizeInput(text)
	if input == "" {
		return nil, ErrEmptyInput
	}

	for _, t := range id.tiers {
		decision := Reduce(Score(t.transform(input), t.dict, t.scorer))

		code, ok := decision.Winner()
		if !ok || !t.accept(decision.Score) {
			continue
		}

		id.logger.Debug("Region identified",
			zap.String("input", input),
			zap.String("code", string(code)),
			zap.String("tier", string(t.name)),
			zap.Int("score", decision.Score))

		return &Match{Input: input, Code: code, Tier: t.name, Score: decision.Score}, nil
	}

	id.logger.Debug("No region identified", zap.String("input", input))
	return nil, &NoMatchError{Input: text}
}

var defaultIdentifier = NewIdentifier(DefaultConfig(), nil)

// Identify dùng identifier mặc định (threshold 90, không log)
func Identify(text string) (Code, error) {
	return defaultIdentifier.Identify(text)
}

// IdentifyValue dùng identifier mặc định
func IdentifyValue(v any) (Code, error) {
	return defaultIdentifier.IdentifyValue(v)
}
