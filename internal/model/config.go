package model

import "time"

// Config is the full application configuration, assembled from defaults,
// the config file, environment variables, and CLI flags.
type Config struct {
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	Pipeline     PipelineConfig     `yaml:"pipeline"`
	Store        StoreConfig        `yaml:"store"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	Output       OutputConfig       `yaml:"output"`
}

// CapabilitiesConfig configures the capability invoker.
type CapabilitiesConfig struct {
	// Provider name: "openai"
	Provider string `yaml:"provider"`

	// Model name passed to the provider
	Model string `yaml:"model"`

	// APIKey for the provider (prefer the environment variable)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string `yaml:"base_url,omitempty"`

	// InvokeTimeout bounds a single capability invocation
	InvokeTimeout time.Duration `yaml:"invoke_timeout"`

	// RatePerSecond limits invocations per capability name
	RatePerSecond float64 `yaml:"rate_per_second"`

	// RateBurst is the burst allowance per capability name
	RateBurst int `yaml:"rate_burst"`
}

// PipelineConfig configures pipeline behavior.
type PipelineConfig struct {
	// ServiceRadiusMiles is the search radius for nearby services
	ServiceRadiusMiles float64 `yaml:"service_radius_miles"`

	// Notifications toggles the best-effort finalization sends
	Notifications bool `yaml:"notifications"`
}

// StoreConfig configures report persistence.
type StoreConfig struct {
	// Backend: "memory" or "disk"
	Backend string `yaml:"backend"`

	// Dir is the report directory for the disk backend
	Dir string `yaml:"dir"`

	// TTL for the memory backend (0 = never expire)
	TTL time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	// BatchWorkers is the number of events processed concurrently
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`

	// RenderBody prints the plaintext report body after processing
	RenderBody bool `yaml:"render_body"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Capabilities: CapabilitiesConfig{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			InvokeTimeout: 30 * time.Second,
			RatePerSecond: 5,
			RateBurst:     5,
		},
		Pipeline: PipelineConfig{
			ServiceRadiusMiles: 5,
			Notifications:      true,
		},
		Store: StoreConfig{
			Backend: "memory",
			TTL:     0,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			RenderBody: true,
		},
	}
}
