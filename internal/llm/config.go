// Package llm wraps the language model that drafts interview roadmaps.
package llm

import (
	"fmt"
	"maps"
)

// ModelTier selects a model by capability rather than by name.
type ModelTier string

const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard" // roadmap synthesis
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend.
type Provider string

const ProviderGemini Provider = "gemini"

const (
	// DefaultTemperature keeps roadmap output close to deterministic.
	DefaultTemperature float32 = 0.1
	// DefaultMaxOutputTokens leaves room for five rounds of topics plus evidence.
	DefaultMaxOutputTokens int32 = 2048
)

// Config holds the model selection and generation settings.
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32 // 0 leaves the provider default
	JSONMode        bool  // ask the provider for an application/json response
}

// DefaultConfig returns the Gemini configuration used for roadmaps.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model for tier, falling back to standard then lite.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier pointing at model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := *c
	clone.Models = maps.Clone(c.Models)
	if clone.Models == nil {
		clone.Models = make(map[ModelTier]string, 1)
	}
	clone.Models[tier] = model
	return &clone
}

// Validate reports settings the client cannot work with.
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini {
		return fmt.Errorf("unsupported LLM provider %q", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max output tokens %d must not be negative", c.MaxOutputTokens)
	}
	if c.GetModel(TierStandard) == "" {
		return fmt.Errorf("no model configured")
	}
	return nil
}
