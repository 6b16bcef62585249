package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/lintrunner/internal/discovery"
	"github.com/eugenenazirov/lintrunner/internal/lint"
)

const (
	defaultLogLevel  = "error"
	defaultLoadBurst = 16
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Glob           bool
	ExcludeMarkers []string
	Exclude        []string
	DrainTimeout   time.Duration
	LoadRate       float64
	LoadBurst      int
	LogLevel       string
	JSON           bool
	Terse          bool
	Lint           lint.Options
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Glob           *bool        `yaml:"glob"`
	ExcludeMarkers []string     `yaml:"exclude_markers"`
	Exclude        []string     `yaml:"exclude"`
	DrainTimeout   string       `yaml:"drain_timeout"`
	LoadRate       *float64     `yaml:"load_rate"`
	LoadBurst      *int         `yaml:"load_burst"`
	LogLevel       string       `yaml:"log_level"`
	JSON           bool         `yaml:"json"`
	Terse          bool         `yaml:"terse"`
	Lint           lint.Options `yaml:"lint"`
}

// CLIOverrides holds command-line flag overrides. Nil fields were not set.
type CLIOverrides struct {
	ConfigFile     string
	Glob           *bool
	ExcludeMarkers []string
	Exclude        []string
	DrainTimeout   *time.Duration
	LoadRate       *float64
	LoadBurst      *int
	LogLevel       *string
	JSON           *bool
	Terse          *bool
	LintFlags      map[string]bool
	Indent         *int
	MaxErr         *int
	MaxLen         *int
	Predef         []string
	Edition        *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables (lowest explicit source)
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Glob:           true,
		ExcludeMarkers: []string{discovery.DefaultMarker},
		LoadBurst:      defaultLoadBurst,
		LogLevel:       defaultLogLevel,
		Lint:           lint.Options{Flags: map[string]bool{}},
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Glob != nil {
		cfg.Glob = *yamlCfg.Glob
	}

	if len(yamlCfg.ExcludeMarkers) > 0 {
		cfg.ExcludeMarkers = yamlCfg.ExcludeMarkers
	}

	cfg.Exclude = append(cfg.Exclude, yamlCfg.Exclude...)

	if yamlCfg.DrainTimeout != "" {
		d, err := time.ParseDuration(yamlCfg.DrainTimeout)
		if err != nil {
			return fmt.Errorf("parse drain_timeout: %w", err)
		}
		cfg.DrainTimeout = d
	}

	if yamlCfg.LoadRate != nil {
		cfg.LoadRate = *yamlCfg.LoadRate
	}

	if yamlCfg.LoadBurst != nil {
		cfg.LoadBurst = *yamlCfg.LoadBurst
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(yamlCfg.LogLevel)
	}

	cfg.JSON = cfg.JSON || yamlCfg.JSON
	cfg.Terse = cfg.Terse || yamlCfg.Terse

	mergeLintOptions(&cfg.Lint, yamlCfg.Lint)
	return nil
}

func mergeLintOptions(dst *lint.Options, src lint.Options) {
	for name, enabled := range src.Flags {
		dst.Flags[name] = enabled
	}
	if src.Indent != 0 {
		dst.Indent = src.Indent
	}
	if src.MaxErr != 0 {
		dst.MaxErr = src.MaxErr
	}
	if src.MaxLen != 0 {
		dst.MaxLen = src.MaxLen
	}
	if len(src.Predef) > 0 {
		dst.Predef = append(dst.Predef, src.Predef...)
	}
	if src.Edition != "" {
		dst.Edition = src.Edition
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if raw := strings.TrimSpace(os.Getenv("LINTRUNNER_EXCLUDE_MARKERS")); raw != "" {
		cfg.ExcludeMarkers = splitList(raw)
	}

	if raw := strings.TrimSpace(os.Getenv("LINTRUNNER_DRAIN_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse LINTRUNNER_DRAIN_TIMEOUT: %w", err)
		}
		cfg.DrainTimeout = d
	}

	if raw := strings.TrimSpace(os.Getenv("LINTRUNNER_LOG_LEVEL")); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}

	if raw := strings.TrimSpace(os.Getenv("LINTRUNNER_GLOB")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse LINTRUNNER_GLOB: %w", err)
		}
		cfg.Glob = value
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Glob != nil {
		cfg.Glob = *overrides.Glob
	}
	if len(overrides.ExcludeMarkers) > 0 {
		cfg.ExcludeMarkers = overrides.ExcludeMarkers
	}
	cfg.Exclude = append(cfg.Exclude, overrides.Exclude...)

	if overrides.DrainTimeout != nil {
		cfg.DrainTimeout = *overrides.DrainTimeout
	}
	if overrides.LoadRate != nil {
		cfg.LoadRate = *overrides.LoadRate
	}
	if overrides.LoadBurst != nil {
		cfg.LoadBurst = *overrides.LoadBurst
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*overrides.LogLevel)
	}
	if overrides.JSON != nil {
		cfg.JSON = *overrides.JSON
	}
	if overrides.Terse != nil {
		cfg.Terse = *overrides.Terse
	}

	lintOverrides := lint.Options{Flags: overrides.LintFlags, Predef: overrides.Predef}
	if overrides.Indent != nil {
		lintOverrides.Indent = *overrides.Indent
	}
	if overrides.MaxErr != nil {
		lintOverrides.MaxErr = *overrides.MaxErr
	}
	if overrides.MaxLen != nil {
		lintOverrides.MaxLen = *overrides.MaxLen
	}
	if overrides.Edition != nil {
		lintOverrides.Edition = *overrides.Edition
	}
	mergeLintOptions(&cfg.Lint, lintOverrides)
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.DrainTimeout < 0 {
		return fmt.Errorf("drain timeout must be >= 0")
	}
	if cfg.LoadRate < 0 {
		return fmt.Errorf("load rate must be >= 0")
	}
	if cfg.LoadBurst < 0 {
		return fmt.Errorf("load burst must be >= 0")
	}
	if _, ok := validLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.Lint.Indent < 0 || cfg.Lint.MaxErr < 0 || cfg.Lint.MaxLen < 0 {
		return fmt.Errorf("lint limits must be >= 0")
	}
	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
