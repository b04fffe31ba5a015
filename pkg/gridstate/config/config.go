// Package config loads gridstate settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ukaji3/gridstate-go/pkg/gridstate"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/history"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/prefs"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/validate"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "gridstate.yaml"

// Config is the top-level configuration.
type Config struct {
	History    HistoryConfig    `yaml:"history"`
	Formatting FormattingConfig `yaml:"formatting"`
	Inference  InferenceConfig  `yaml:"inference"`
	Logging    LoggingConfig    `yaml:"logging"`
	Prefs      PrefsConfig      `yaml:"prefs"`
}

// HistoryConfig bounds undo/redo.
type HistoryConfig struct {
	// MaxEntries counts the load-time baseline.
	MaxEntries int `yaml:"max_entries"`
}

// FormattingConfig holds the defaults used when a column format leaves a field unset.
type FormattingConfig struct {
	Decimals     int    `yaml:"decimals"`
	CurrencyCode string `yaml:"currency_code"`
	DatePattern  string `yaml:"date_pattern"`
}

// InferenceConfig tunes column type inference at load time.
type InferenceConfig struct {
	Threshold  float64 `yaml:"threshold"`
	SampleSize int     `yaml:"sample_size"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PrefsConfig locates the column-width database.
type PrefsConfig struct {
	DatabasePath string `yaml:"database_path"`
	Debounce     string `yaml:"debounce"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	v := validate.DefaultSettings()
	return &Config{
		History: HistoryConfig{MaxEntries: history.DefaultMaxEntries},
		Formatting: FormattingConfig{
			Decimals:     v.Decimals,
			CurrencyCode: v.CurrencyCode,
			DatePattern:  v.DatePattern,
		},
		Inference: InferenceConfig{
			Threshold:  v.Threshold,
			SampleSize: gridstate.DefaultSampleSize,
		},
		Logging: LoggingConfig{Level: "info"},
		Prefs: PrefsConfig{
			DatabasePath: filepath.Join(".gridstate", "prefs.db"),
			Debounce:     prefs.DefaultDebounce.String(),
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("GRIDSTATE_PREFS_DB"); path != "" {
		c.Prefs.DatabasePath = path
	}
	if level := os.Getenv("GRIDSTATE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.History.MaxEntries < 1 {
		return fmt.Errorf("history.max_entries must be at least 1, got %d", c.History.MaxEntries)
	}
	if c.Formatting.Decimals < 0 || c.Formatting.Decimals > validate.MaxDecimals {
		return fmt.Errorf("formatting.decimals must be in [0, %d], got %d", validate.MaxDecimals, c.Formatting.Decimals)
	}
	if _, err := currency.ParseISO(c.Formatting.CurrencyCode); err != nil {
		return fmt.Errorf("invalid formatting.currency_code %q: %w", c.Formatting.CurrencyCode, err)
	}
	switch c.Formatting.DatePattern {
	case models.DatePatternUS, models.DatePatternEU, models.DatePatternISO:
	default:
		return fmt.Errorf("invalid formatting.date_pattern %q", c.Formatting.DatePattern)
	}
	if c.Inference.Threshold <= 0 || c.Inference.Threshold >= 1 {
		return fmt.Errorf("inference.threshold must be in (0, 1), got %v", c.Inference.Threshold)
	}
	if c.Inference.SampleSize < 1 {
		return fmt.Errorf("inference.sample_size must be at least 1, got %d", c.Inference.SampleSize)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Prefs.Debounce); err != nil {
		return fmt.Errorf("invalid prefs.debounce %q: %w", c.Prefs.Debounce, err)
	}
	return nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return lvl, nil
}

// GetDebounce returns prefs.debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Prefs.Debounce)
	if err != nil || d <= 0 {
		return prefs.DefaultDebounce
	}
	return d
}

// ValidationSettings returns the formatting and inference defaults.
func (c *Config) ValidationSettings() validate.Settings {
	return validate.Settings{
		Decimals:     c.Formatting.Decimals,
		CurrencyCode: c.Formatting.CurrencyCode,
		DatePattern:  c.Formatting.DatePattern,
		Threshold:    c.Inference.Threshold,
	}
}

// EngineOptions maps the configuration onto store options.
func (c *Config) EngineOptions(logger *zap.Logger) gridstate.Options {
	v := c.ValidationSettings()
	return gridstate.Options{
		MaxHistory: c.History.MaxEntries,
		Validation: &v,
		Logger:     logger,
	}
}

// LoadOptions maps the configuration onto dataset load options.
func (c *Config) LoadOptions(sheet, cellRange string) gridstate.LoadOptions {
	return gridstate.LoadOptions{
		Sheet:      sheet,
		Range:      cellRange,
		SampleSize: c.Inference.SampleSize,
		Validator:  validate.New(c.ValidationSettings()),
	}
}

// PrefsOptions maps the configuration onto preference store options.
func (c *Config) PrefsOptions(grid string, logger *zap.Logger) prefs.Options {
	return prefs.Options{
		Grid:     grid,
		Debounce: c.GetDebounce(),
		Logger:   logger,
	}
}
