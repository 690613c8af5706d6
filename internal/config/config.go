// Package config defines service configuration and how it is loaded.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// InputPath is the raw registration CSV. When it cannot be read the
	// service serves synthetic sample data and marks it as such.
	InputPath string `koanf:"input_path"`

	// OutputPath is where cmd/clean writes the cleaned CSV.
	OutputPath string `koanf:"output_path" validate:"required"`

	// SampleRows and SampleSeed shape the synthetic fallback dataset.
	SampleRows int    `koanf:"sample_rows" validate:"min=1,max=1000000"`
	SampleSeed uint64 `koanf:"sample_seed"`

	// TopN is the default size of ranking tables; MaxTopLimit caps ?limit.
	TopN        int `koanf:"top_n" validate:"min=1"`
	MaxTopLimit int `koanf:"max_top_limit" validate:"min=1,gtefield=TopN"`

	// CacheSize bounds the number of memoized pipeline results.
	CacheSize int `koanf:"cache_size" validate:"min=1"`

	// MaxUploadBytes caps POST /datasets bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes" validate:"min=1024"`

	// InactiveDays is the dormancy threshold for participant activity.
	InactiveDays int `koanf:"inactive_days" validate:"min=0"`

	// Metrics naming. Series are exported as <namespace>_<subsystem>_<name>;
	// a non-empty MetricsInstance is attached as a constant "instance" label.
	MetricsNamespace string    `koanf:"metrics_namespace" validate:"required"`
	MetricsSubsystem string    `koanf:"metrics_subsystem"`
	MetricsInstance  string    `koanf:"metrics_instance"`
	MetricsBuckets   []float64 `koanf:"metrics_buckets" validate:"omitempty,dive,gt=0"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		InputPath:      "data/raw/registrations.csv",
		OutputPath:     "data/processed/cleaned_data.csv",
		SampleRows:     500,
		SampleSeed:     42,
		TopN:           10,
		MaxTopLimit:    100,
		CacheSize:      16,
		MaxUploadBytes: 64 << 20,
		InactiveDays:   90,

		MetricsNamespace: "thaidash",
		MetricsSubsystem: "analytics",
	}
}
