package config

import (
	"fmt"
	"os"

	"stock-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills in the optional dashboard knobs so a minimal config
// file stays usable.
func (c *Config) applyDefaults() {
	d := &c.Dashboard
	if d.DefaultSymbol == "" {
		d.DefaultSymbol = "AAPL"
	}
	if d.DefaultInterval == "" {
		d.DefaultInterval = models.IntervalDaily
	}
	if d.MAShortMin == 0 {
		d.MAShortMin = 5
	}
	if d.MAShortMax == 0 {
		d.MAShortMax = 50
	}
	if d.MAShortDefault == 0 {
		d.MAShortDefault = 20
	}
	if d.MALongMin == 0 {
		d.MALongMin = 50
	}
	if d.MALongMax == 0 {
		d.MALongMax = 200
	}
	if d.MALongDefault == 0 {
		d.MALongDefault = 50
	}
	if d.HistogramBins == 0 {
		d.HistogramBins = 40
	}

	if c.Provider.Name == "" {
		c.Provider.Name = "yahoo"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Provider.MaxSpanYears == 0 {
		c.Provider.MaxSpanYears = 20
	}
	if c.Storage.CacheTTLMinutes == 0 {
		c.Storage.CacheTTLMinutes = 15
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = 7
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}
	if c.Storage.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache TTL cannot be negative")
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	// Validate Dashboard configuration
	d := c.Dashboard
	if d.MAShortMin <= 0 || d.MAShortMax < d.MAShortMin {
		return fmt.Errorf("invalid short moving average bounds: [%d, %d]", d.MAShortMin, d.MAShortMax)
	}
	if d.MALongMin <= 0 || d.MALongMax < d.MALongMin {
		return fmt.Errorf("invalid long moving average bounds: [%d, %d]", d.MALongMin, d.MALongMax)
	}
	if d.MAShortDefault < d.MAShortMin || d.MAShortDefault > d.MAShortMax {
		return fmt.Errorf("short moving average default %d outside bounds [%d, %d]", d.MAShortDefault, d.MAShortMin, d.MAShortMax)
	}
	if d.MALongDefault < d.MALongMin || d.MALongDefault > d.MALongMax {
		return fmt.Errorf("long moving average default %d outside bounds [%d, %d]", d.MALongDefault, d.MALongMin, d.MALongMax)
	}
	if d.HistogramBins <= 0 {
		return fmt.Errorf("histogram bins must be greater than 0")
	}

	switch d.DefaultInterval {
	case models.IntervalDaily, models.IntervalWeekly, models.IntervalMonthly:
	default:
		return fmt.Errorf("unsupported default interval: %s", d.DefaultInterval)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
