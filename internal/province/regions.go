package province

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Code là mã bưu chính hai chữ cái của một tỉnh/lãnh thổ Canada
type Code string

const (
	AB Code = "AB"
	BC Code = "BC"
	MB Code = "MB"
	NB Code = "NB"
	NL Code = "NL"
	NT Code = "NT"
	NS Code = "NS"
	NU Code = "NU"
	ON Code = "ON"
	PE Code = "PE"
	QC Code = "QC"
	SK Code = "SK"
	YT Code = "YT"
)

// AllCodes lists the canonical codes in dictionary order.
var AllCodes = []Code{AB, BC, MB, NB, NL, NT, NS, NU, ON, PE, QC, SK, YT}

// Valid reports whether c is one of the thirteen canonical codes.
func (c Code) Valid() bool {
	for _, known := range AllCodes {
		if c == known {
			return true
		}
	}
	return false
}

func (c Code) String() string { return string(c) }

// Region một tỉnh/lãnh thổ cùng các cách viết được chấp nhận
type Region struct {
	Code     Code     `yaml:"code" json:"code"`
	Name     string   `yaml:"name" json:"name"`
	Variants []string `yaml:"variants" json:"variants"`
}

// Dictionary is an ordered list of regions. Values returned by this package are
// never mutated after construction.
type Dictionary []Region

type regionFile struct {
	Regions []Region `yaml:"regions"`
}

//go:embed data/regions.yaml
var regionsYAML []byte

var base = mustLoad(regionsYAML)

func mustLoad(data []byte) Dictionary {
	dict, err := Load(data)
	if err != nil {
		panic(err)
	}
	return dict
}

// Default trả về bản sao của dictionary gốc
func Default() Dictionary {
	return base.Transform(func(s string) string { return s })
}

// Load decode dictionary từ YAML và validate
func Load(data []byte) (Dictionary, error) {
	var f regionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}

	dict := Dictionary(f.Regions)
	if err := dict.Validate(); err != nil {
		return nil, err
	}
	return dict, nil
}

// Validate checks that codes are known and unique, that every region has at
// least one variant, that variants are non-empty, lowercase and owned by a
// single region, and that all thirteen regions are present.
func (d Dictionary) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("dictionary is empty")
	}

	seenCodes := make(map[Code]bool, len(d))
	owners := make(map[string]Code)

	for _, r := range d {
		if !r.Code.Valid() {
			return fmt.Errorf("unknown region code %q", r.Code)
		}
		if seenCodes[r.Code] {
			return fmt.Errorf("region %s listed twice", r.Code)
		}
		seenCodes[r.Code] = true

		if len(r.Variants) == 0 {
			return fmt.Errorf("region %s has no variants", r.Code)
		}
		for _, v := range r.Variants {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("region %s has an empty variant", r.Code)
			}
			if v != strings.ToLower(v) {
				return fmt.Errorf("region %s variant %q is not lowercase", r.Code, v)
			}
			if owner, ok := owners[v]; ok && owner != r.Code {
				return fmt.Errorf("variant %q listed under both %s and %s", v, owner, r.Code)
			}
			owners[v] = r.Code
		}
	}

	if len(d) != len(AllCodes) {
		return fmt.Errorf("dictionary has %d regions, want %d", len(d), len(AllCodes))
	}
	return nil
}

// Transform returns a copy of the dictionary with fn applied to every variant.
func (d Dictionary) Transform(fn func(string) string) Dictionary {
	out := make(Dictionary, len(d))
	for i, r := range d {
		variants := make([]string, len(r.Variants))
		for j, v := range r.Variants {
			variants[j] = fn(v)
		}
		out[i] = Region{Code: r.Code, Name: r.Name, Variants: variants}
	}
	return out
}

// Codes trả về danh sách mã theo thứ tự dictionary
func (d Dictionary) Codes() []Code {
	codes := make([]Code, len(d))
	for i, r := range d {
		codes[i] = r.Code
	}
	return codes
}

func (d Dictionary) Lookup(code Code) (Region, bool) {
	for _, r := range d {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
