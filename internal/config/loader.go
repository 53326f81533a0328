package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ROADMAP_"

// EnvConfigPath names the config file when Load is called without a path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file at path, or at ROADMAP_CONFIG when path is empty (.yaml, .yml, .json)
//  3. env (prefix ROADMAP_)
//
// When no Gemini key is configured, GEMINI_API_KEY and then GOOGLE_API_KEY are
// used. Google search credentials fall back to GOOGLE_SEARCH_API_KEY and
// GOOGLE_SEARCH_CX. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, &Error{Kind: ErrLoadConfig, Message: "failed to read " + path, Cause: err}
		}
	}

	// ROADMAP_LLM_MODEL -> llm_model (flat keys, underscores preserved)
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, &Error{Kind: ErrLoadConfig, Message: "failed to read environment", Cause: err}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &Error{Kind: ErrLoadConfig, Message: "failed to decode settings", Cause: err}
	}

	cfg.applyEnvFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, &Error{Kind: ErrLoadConfig, Message: "unsupported config file type: " + path}
	}
}

func (c *Config) applyEnvFallbacks() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}
	if c.GoogleSearchAPIKey == "" {
		c.GoogleSearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if c.GoogleSearchCX == "" {
		c.GoogleSearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
