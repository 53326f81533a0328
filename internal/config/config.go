// Package config provides configuration loading and validation for the CLI.
package config

import (
	"math"
	"time"

	"github.com/jonathan/interview-roadmap/internal/llm"
)

// Search providers accepted in search_provider.
const (
	SearchDuckDuckGo     = "duckduckgo"
	SearchDuckDuckGoHTML = "duckduckgo-html"
	SearchGoogle         = "google"
	SearchNone           = "none"
)

// Config holds every runtime setting. Keys match the config file and the
// ROADMAP_* environment variables (ROADMAP_LLM_MODEL sets llm_model).
type Config struct {
	// Logging
	LogLevel  string `koanf:"log_level"`  // debug, info, warn, error
	LogFormat string `koanf:"log_format"` // text or json

	// Output
	OutputDir       string `koanf:"output_dir"`
	MetricsTextfile string `koanf:"metrics_textfile"` // empty disables metrics output

	// Model
	LLMProvider        string        `koanf:"llm_provider"`
	LLMModel           string        `koanf:"llm_model"`
	LLMTemperature     float64       `koanf:"llm_temperature"`
	LLMMaxOutputTokens int           `koanf:"llm_max_output_tokens"` // 0 leaves the provider default
	LLMJSONMode        bool          `koanf:"llm_json_mode"`
	LLMTimeout         time.Duration `koanf:"llm_timeout"`
	GeminiAPIKey       string        `koanf:"gemini_api_key"`
	Offline            bool          `koanf:"offline"` // skip the model, always use the fallback

	// Company search
	SearchProvider     string        `koanf:"search_provider"`
	SearchTimeout      time.Duration `koanf:"search_timeout"`
	SearchMaxQueries   int           `koanf:"search_max_queries"`
	SearchBaseURL      string        `koanf:"search_base_url"`
	SearchFallbackHTML bool          `koanf:"search_fallback_html"` // retry DuckDuckGo through its HTML page
	GoogleSearchAPIKey string        `koanf:"google_search_api_key"`
	GoogleSearchCX     string        `koanf:"google_search_cx"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",

		OutputDir: ".",

		LLMProvider:        string(llm.ProviderGemini),
		LLMModel:           "gemini-2.0-flash",
		LLMTemperature:     float64(llm.DefaultTemperature),
		LLMMaxOutputTokens: int(llm.DefaultMaxOutputTokens),
		LLMTimeout:         60 * time.Second,

		SearchProvider:     SearchDuckDuckGo,
		SearchTimeout:      10 * time.Second,
		SearchMaxQueries:   2,
		SearchFallbackHTML: true,
	}
}

// LLMConfig returns the model configuration with llm_model as the standard tier.
func (c *Config) LLMConfig() *llm.Config {
	base := llm.DefaultConfig()
	base.Provider = llm.Provider(c.LLMProvider)
	base.Temperature = float32(c.LLMTemperature)
	base.MaxOutputTokens = int32(c.LLMMaxOutputTokens)
	base.JSONMode = c.LLMJSONMode
	if c.LLMModel == "" {
		return base
	}
	return base.WithModel(llm.TierStandard, c.LLMModel)
}

// SearchEnabled reports whether company research should run.
func (c *Config) SearchEnabled() bool {
	return c.SearchProvider != SearchNone && c.SearchProvider != ""
}

// Validate checks that the configuration has usable values. API keys are not
// required here; a missing Gemini key degrades to the fallback roadmap.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log_level", "must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return invalid("log_format", "must be text or json")
	}

	if c.OutputDir == "" {
		return invalid("output_dir", "must not be empty")
	}

	if llm.Provider(c.LLMProvider) != llm.ProviderGemini {
		return invalid("llm_provider", "must be gemini")
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return invalid("llm_temperature", "must be between 0 and 2")
	}
	if c.LLMMaxOutputTokens < 0 || c.LLMMaxOutputTokens > math.MaxInt32 {
		return invalid("llm_max_output_tokens", "must be between 0 and 2147483647")
	}
	if c.LLMTimeout < 0 {
		return invalid("llm_timeout", "must be non-negative")
	}

	switch c.SearchProvider {
	case SearchDuckDuckGo, SearchDuckDuckGoHTML, SearchNone:
	case SearchGoogle:
		if c.GoogleSearchAPIKey == "" || c.GoogleSearchCX == "" {
			return invalid("search_provider", "google requires google_search_api_key and google_search_cx")
		}
	default:
		return invalid("search_provider", "must be one of duckduckgo, duckduckgo-html, google, none")
	}
	if c.SearchTimeout < 0 {
		return invalid("search_timeout", "must be non-negative")
	}
	if c.SearchMaxQueries < 1 {
		return invalid("search_max_queries", "must be at least 1")
	}

	return nil
}
