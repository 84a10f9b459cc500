// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns defaults; Load(ctx) layers file and environment on top.
// - External errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the JSON or YAML dataset. Takes precedence over DatasetURL.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetURL is fetched with GET when DatasetPath is empty.
	DatasetURL string `koanf:"dataset_url"`

	// DatasetTimeoutMS bounds the dataset fetch.
	DatasetTimeoutMS int `koanf:"dataset_timeout_ms"`

	// SampleSize caps GET /random-entries.
	SampleSize int `koanf:"sample_size"`

	// SampleSeed fixes the sampler seed when non-zero.
	SampleSeed uint64 `koanf:"sample_seed"`

	// Title is rendered by the home view.
	Title string `koanf:"title"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DatasetPath:      "db.json",
		DatasetTimeoutMS: 10_000,
		SampleSize:       5,
		Title:            "Entry Catalog",
	}
}
