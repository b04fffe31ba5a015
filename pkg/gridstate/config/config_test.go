package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.History.MaxEntries != 50 {
		t.Errorf("expected MaxEntries=50, got %d", cfg.History.MaxEntries)
	}
	if cfg.Formatting.CurrencyCode != "USD" {
		t.Errorf("expected CurrencyCode=USD, got %s", cfg.Formatting.CurrencyCode)
	}
	if cfg.Inference.SampleSize != 100 {
		t.Errorf("expected SampleSize=100, got %d", cfg.Inference.SampleSize)
	}
	if cfg.GetDebounce() != 300*time.Millisecond {
		t.Errorf("expected debounce 300ms, got %v", cfg.GetDebounce())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("GRIDSTATE_PREFS_DB", "")
	t.Setenv("GRIDSTATE_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "conf", DefaultFileName)
	cfg := DefaultConfig()
	cfg.History.MaxEntries = 10
	cfg.Formatting.CurrencyCode = "EUR"
	cfg.Logging.Level = "debug"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.History.MaxEntries != 10 {
		t.Errorf("expected MaxEntries=10, got %d", loaded.History.MaxEntries)
	}
	if loaded.Formatting.CurrencyCode != "EUR" {
		t.Errorf("expected CurrencyCode=EUR, got %s", loaded.Formatting.CurrencyCode)
	}
	lvl, err := loaded.LogLevel()
	if err != nil || lvl != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v (%v)", lvl, err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("GRIDSTATE_PREFS_DB", "")
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("formatting:\n  decimals: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Formatting.Decimals != 0 {
		t.Errorf("expected Decimals=0, got %d", cfg.Formatting.Decimals)
	}
	if cfg.Formatting.CurrencyCode != "USD" {
		t.Errorf("expected CurrencyCode default, got %s", cfg.Formatting.CurrencyCode)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("expected MaxEntries default, got %d", cfg.History.MaxEntries)
	}
}

func TestLoad_MissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "absent.yaml")); err != nil {
		t.Errorf("missing file should yield defaults, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("history: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GRIDSTATE_PREFS_DB", "/tmp/widths.db")
	t.Setenv("GRIDSTATE_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prefs.DatabasePath != "/tmp/widths.db" {
		t.Errorf("expected env database path, got %s", cfg.Prefs.DatabasePath)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env level, got %s", cfg.Logging.Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"history", func(c *Config) { c.History.MaxEntries = 0 }},
		{"decimals", func(c *Config) { c.Formatting.Decimals = -1 }},
		{"decimals too large", func(c *Config) { c.Formatting.Decimals = 400 }},
		{"currency", func(c *Config) { c.Formatting.CurrencyCode = "XYZW" }},
		{"date pattern", func(c *Config) { c.Formatting.DatePattern = "YY.MM.DD" }},
		{"threshold", func(c *Config) { c.Inference.Threshold = 1.5 }},
		{"sample size", func(c *Config) { c.Inference.SampleSize = 0 }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"debounce", func(c *Config) { c.Prefs.Debounce = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.MaxEntries = 5
	cfg.Formatting.Decimals = 1

	opts := cfg.EngineOptions(nil)
	if opts.MaxHistory != 5 {
		t.Errorf("expected MaxHistory=5, got %d", opts.MaxHistory)
	}
	if opts.Validation == nil || opts.Validation.Decimals != 1 {
		t.Errorf("expected Decimals=1, got %+v", opts.Validation)
	}

	lo := cfg.LoadOptions("Sheet1", "A1:C3")
	if lo.SampleSize != 100 || lo.Sheet != "Sheet1" || lo.Range != "A1:C3" || lo.Validator == nil {
		t.Errorf("unexpected load options %+v", lo)
	}

	po := cfg.PrefsOptions("orders", nil)
	if po.Debounce != 300*time.Millisecond || po.Grid != "orders" {
		t.Errorf("unexpected prefs options %+v", po)
	}
}
