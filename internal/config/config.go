// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// LookbackMonths bounds the trailing metric window for generation.
	LookbackMonths int `koanf:"lookback_months"`

	// LatestWindow sets how many recent months the latest view averages.
	LatestWindow int `koanf:"latest_window"`

	// BatchWorkers bounds concurrency in scheduled batch generation.
	BatchWorkers int `koanf:"batch_workers"`

	// GenerateIntervalHours sets how often the scheduler regenerates
	// scores for all creators. Zero disables the scheduler.
	GenerateIntervalHours int `koanf:"generate_interval_hours"`

	// PlatformWeights overrides the platform reliability table used when
	// blending platform scores, keyed by platform type.
	PlatformWeights map[string]float64 `koanf:"platform_weights"`

	// DefaultPlatformWeight is used for platform types missing from
	// PlatformWeights.
	DefaultPlatformWeight float64 `koanf:"default_platform_weight"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		DBPath:                "creatorscore.db",
		LookbackMonths:        12,
		LatestWindow:          3,
		BatchWorkers:          4,
		GenerateIntervalHours: 24,
		PlatformWeights: map[string]float64{
			"MEMBERSHIP": 0.50,
			"VIDEO":      0.35,
			"PHOTO":      0.15,
		},
		DefaultPlatformWeight: 0.10,
	}
}
