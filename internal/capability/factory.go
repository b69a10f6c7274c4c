package capability

import (
	"fmt"
	"strings"
	"time"

	"github.com/fnolabs/crashtriage/internal/model"
)

// Config holds capability invoker configuration.
type Config struct {
	// Provider name: "openai"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// InvokeTimeout bounds a single invocation
	InvokeTimeout time.Duration

	// Rate limiting per capability name
	RatePerSecond float64
	RateBurst     int
}

// NewInvoker creates an invoker based on configuration.
func NewInvoker(config Config) (Invoker, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIInvoker(config)
	default:
		return nil, fmt.Errorf("unknown capability provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts model.CapabilitiesConfig to capability.Config.
func ConfigFromModel(mc model.CapabilitiesConfig) Config {
	return Config{
		Provider:      mc.Provider,
		Model:         mc.Model,
		APIKey:        mc.APIKey,
		BaseURL:       mc.BaseURL,
		InvokeTimeout: mc.InvokeTimeout,
		RatePerSecond: mc.RatePerSecond,
		RateBurst:     mc.RateBurst,
	}
}
