package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	Storage   MStorageConfig   `yaml:"storage"`
	Network   MNetworkConfig   `yaml:"network"`
	Provider  MProviderConfig  `yaml:"provider"`
	Dashboard MDashboardConfig `yaml:"dashboard"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	CacheTTLMinutes    int    `yaml:"cache_ttl_minutes"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"`
	UserAgent      string   `yaml:"user_agent"`
}

type MProviderConfig struct {
	Name         string `yaml:"name"`
	BaseURL      string `yaml:"base_url"`
	MaxSpanYears int    `yaml:"max_span_years"`
}

type MDashboardConfig struct {
	DefaultSymbol   string `yaml:"default_symbol"`
	DefaultInterval string `yaml:"default_interval"`
	MAShortDefault  int    `yaml:"ma_short_default"`
	MAShortMin      int    `yaml:"ma_short_min"`
	MAShortMax      int    `yaml:"ma_short_max"`
	MALongDefault   int    `yaml:"ma_long_default"`
	MALongMin       int    `yaml:"ma_long_min"`
	MALongMax       int    `yaml:"ma_long_max"`
	HistogramBins   int    `yaml:"histogram_bins"`
}
