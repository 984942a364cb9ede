// config.go
package redcore

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration wraps time.Duration for TOML (un)marshaling, same role as the
// teacher's Duration type referenced from struct.go's Config.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Config holds every tunable budget and timeout the engine uses. Defaults
// match the literal numbers named throughout spec.md.
type Config struct {
	UserAgent string `toml:"UserAgent"`

	MaxHeaderSize      int `toml:"MaxHeaderSize"`
	MaxHeaderBlockSize int `toml:"MaxHeaderBlockSize"`
	MaxURILen          int `toml:"MaxURILen"`
	DecodedSampleCap   int `toml:"DecodedSampleCap"`
	PayloadSampleSlots int `toml:"PayloadSampleSlots"`

	ClockSkewTolerance Duration `toml:"ClockSkewTolerance"`

	ConnectTimeout Duration `toml:"ConnectTimeout"`
	ReadTimeout    Duration `toml:"ReadTimeout"`
	MaxRuntime     Duration `toml:"MaxRuntime"`

	RobotsCacheDir      string   `toml:"RobotsCacheDir"`
	RobotsCacheTTL      Duration `toml:"RobotsCacheTTL"`
	RobotsCacheCapacity int      `toml:"RobotsCacheCapacity"`

	CacheableMethods         []string `toml:"CacheableMethods"`
	HeuristicCacheableStatus []string `toml:"HeuristicCacheableStatus"`

	RangeProbeBytes int64 `toml:"RangeProbeBytes"`
}

// DefaultConfig returns the spec's literal defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:                fmt.Sprintf("RED/%s (https://redbot.org/)", Version),
		MaxHeaderSize:            4 * 1024,
		MaxHeaderBlockSize:       8000,
		MaxURILen:                8000,
		DecodedSampleCap:         128 * 1024,
		PayloadSampleSlots:       4,
		ClockSkewTolerance:       Duration{5 * time.Second},
		ConnectTimeout:           Duration{10 * time.Second},
		ReadTimeout:              Duration{15 * time.Second},
		MaxRuntime:               Duration{60 * time.Second},
		RobotsCacheTTL:           Duration{30 * time.Minute},
		RobotsCacheCapacity:      256,
		CacheableMethods:         []string{"GET"},
		HeuristicCacheableStatus: []string{"200", "203", "206", "300", "301", "410"},
		RangeProbeBytes:          1024,
	}
}

// Version is the engine's reported version, used to build the default
// User-Agent string.
const Version = "1.0"

// LoadConfig reads a TOML file, overlays it onto DefaultConfig, and
// validates the result. Mirrors the teacher's initApp (main.go):
// read file -> toml.Unmarshal -> validateConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for obviously broken values.
func (c Config) Validate() error {
	if c.MaxHeaderSize <= 0 {
		return fmt.Errorf("MaxHeaderSize must be positive")
	}
	if c.MaxHeaderBlockSize <= 0 {
		return fmt.Errorf("MaxHeaderBlockSize must be positive")
	}
	if c.DecodedSampleCap <= 0 {
		return fmt.Errorf("DecodedSampleCap must be positive")
	}
	if c.PayloadSampleSlots <= 0 {
		return fmt.Errorf("PayloadSampleSlots must be positive")
	}
	if len(c.CacheableMethods) == 0 {
		return fmt.Errorf("CacheableMethods must not be empty")
	}
	return nil
}
