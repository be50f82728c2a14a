package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type BatchCfg struct {
	MaxItems int `yaml:"max_items" json:"max_items"`
}

type CleanerCfg struct {
	PrimaryThreshold int      `yaml:"primary_threshold" json:"primary_threshold"`
	Threshold        int      `yaml:"threshold" json:"threshold"`
	MinYear          int      `yaml:"min_year" json:"min_year"`
	Batch            BatchCfg `yaml:"batch" json:"batch"`
}

// Default cấu hình mặc định khi không có file
func Default() CleanerCfg {
	return CleanerCfg{
		PrimaryThreshold: 80,
		Threshold:        90,
		MinYear:          1900,
		Batch:            BatchCfg{MaxItems: 20000},
	}
}

var C = Default()

// Load đọc file YAML vào C. File không tồn tại thì giữ default.
func Load(path string) error {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return err
		}
	}

	// ENV overrides
	if v := os.Getenv("CLEANER_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Threshold = n
		}
	}

	C = cfg
	return nil
}

// RequestTimeout thời gian tối đa để client gửi xong request header
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
