package config

import (
	"os"
	"path/filepath"
	"testing"

	"stock-dashboard/src/models"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
name: "stock-dashboard"
host: "127.0.0.1"
port: 8080
log_level: "INFO"
storage:
  db_type: "sqlite"
  db_path: "cache.db"
network:
  timeout: 10
  retries: 3
`

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	d := cfg.Dashboard
	if d.DefaultSymbol != "AAPL" || d.DefaultInterval != models.IntervalDaily {
		t.Errorf("dashboard defaults = %q/%q", d.DefaultSymbol, d.DefaultInterval)
	}
	if d.MAShortDefault != 20 || d.MAShortMin != 5 || d.MAShortMax != 50 {
		t.Errorf("short MA knobs = %d [%d, %d]", d.MAShortDefault, d.MAShortMin, d.MAShortMax)
	}
	if d.MALongDefault != 50 || d.MALongMin != 50 || d.MALongMax != 200 {
		t.Errorf("long MA knobs = %d [%d, %d]", d.MALongDefault, d.MALongMin, d.MALongMax)
	}
	if d.HistogramBins != 40 {
		t.Errorf("histogram bins = %d, want 40", d.HistogramBins)
	}
	if cfg.Provider.Name != "yahoo" || cfg.Provider.BaseURL == "" {
		t.Errorf("provider defaults = %q %q", cfg.Provider.Name, cfg.Provider.BaseURL)
	}
	if cfg.Storage.CacheTTLMinutes != 15 || cfg.Storage.RetentionDays != 7 {
		t.Errorf("storage defaults = %d/%d", cfg.Storage.CacheTTLMinutes, cfg.Storage.RetentionDays)
	}
}

func TestNewConfigOverridesSurvive(t *testing.T) {
	content := minimalConfig + `
dashboard:
  default_symbol: "MSFT"
  ma_short_default: 10
  histogram_bins: 25
provider:
  max_span_years: 5
`
	cfg, err := NewConfig(writeConfigFile(t, content))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Dashboard.DefaultSymbol != "MSFT" {
		t.Errorf("default symbol = %q, want MSFT", cfg.Dashboard.DefaultSymbol)
	}
	if cfg.Dashboard.MAShortDefault != 10 {
		t.Errorf("ma short default = %d, want 10", cfg.Dashboard.MAShortDefault)
	}
	if cfg.Dashboard.HistogramBins != 25 {
		t.Errorf("histogram bins = %d, want 25", cfg.Dashboard.HistogramBins)
	}
	if cfg.Provider.MaxSpanYears != 5 {
		t.Errorf("max span years = %d, want 5", cfg.Provider.MaxSpanYears)
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file content", `name: ""`},
		{"bad port", `
name: "x"
host: "127.0.0.1"
port: 80
storage: {db_type: "sqlite", db_path: "cache.db"}
network: {timeout: 10}
`},
		{"sqlite without path", `
name: "x"
host: "127.0.0.1"
port: 8080
storage: {db_type: "sqlite"}
network: {timeout: 10}
`},
		{"postgres without dsn", `
name: "x"
host: "127.0.0.1"
port: 8080
storage: {db_type: "postgres"}
network: {timeout: 10}
`},
		{"zero timeout", `
name: "x"
host: "127.0.0.1"
port: 8080
storage: {db_type: "sqlite", db_path: "cache.db"}
network: {timeout: 0}
`},
		{"bad interval", `
name: "x"
host: "127.0.0.1"
port: 8080
storage: {db_type: "sqlite", db_path: "cache.db"}
network: {timeout: 10}
dashboard: {default_interval: "5m"}
`},
		{"ma default outside bounds", `
name: "x"
host: "127.0.0.1"
port: 8080
storage: {db_type: "sqlite", db_path: "cache.db"}
network: {timeout: 10}
dashboard: {ma_short_default: 3, ma_short_min: 5, ma_short_max: 50}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(writeConfigFile(t, tt.content)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestNewConfigMalformedYAML(t *testing.T) {
	if _, err := NewConfig(writeConfigFile(t, "name: [unclosed")); err == nil {
		t.Error("expected parse error, got nil")
	}
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := NewConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name != cfg.Name || reloaded.Port != cfg.Port {
		t.Errorf("reloaded config differs: %+v vs %+v", reloaded.MConfig, cfg.MConfig)
	}
	if reloaded.Dashboard != cfg.Dashboard {
		t.Errorf("dashboard section differs after round trip")
	}
}
