package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.0-flash", config.GetModel(TierStandard))
	assert.InDelta(t, 0.1, config.Temperature, 1e-6)
	assert.Equal(t, DefaultMaxOutputTokens, config.MaxOutputTokens)
	assert.False(t, config.JSONMode)
	require.NoError(t, config.Validate())
}

func TestGetModel(t *testing.T) {
	tests := []struct {
		name   string
		models map[ModelTier]string
		tier   ModelTier
		want   string
	}{
		{"exact tier", map[ModelTier]string{TierAdvanced: "pro", TierStandard: "flash"}, TierAdvanced, "pro"},
		{"falls back to standard", map[ModelTier]string{TierStandard: "flash"}, TierAdvanced, "flash"},
		{"falls back to lite", map[ModelTier]string{TierLite: "lite"}, "unknown", "lite"},
		{"blank entry is skipped", map[ModelTier]string{TierAdvanced: "", TierStandard: "flash"}, TierAdvanced, "flash"},
		{"nothing configured", map[ModelTier]string{}, TierAdvanced, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Provider: ProviderGemini, Models: tt.models}
			assert.Equal(t, tt.want, config.GetModel(tt.tier))
		})
	}
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	config.JSONMode = true
	custom := config.WithModel(TierStandard, "gemini-2.5-flash")

	assert.Equal(t, "gemini-2.0-flash", config.GetModel(TierStandard), "original is unchanged")
	assert.Equal(t, "gemini-2.5-flash", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.0-flash-lite", custom.GetModel(TierLite))
	assert.Equal(t, config.Temperature, custom.Temperature)
	assert.True(t, custom.JSONMode)

	empty := (&Config{Provider: ProviderGemini}).WithModel(TierStandard, "m")
	assert.Equal(t, "m", empty.GetModel(TierStandard))
}

func TestConfigValidate(t *testing.T) {
	models := map[ModelTier]string{TierStandard: "m"}
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:    "unknown provider",
			config:  &Config{Provider: "openai", Models: models},
			wantErr: "unsupported LLM provider",
		},
		{
			name:    "negative temperature",
			config:  &Config{Provider: ProviderGemini, Models: models, Temperature: -1},
			wantErr: "temperature",
		},
		{
			name:    "temperature too high",
			config:  &Config{Provider: ProviderGemini, Models: models, Temperature: 2.5},
			wantErr: "temperature",
		},
		{
			name:    "negative token cap",
			config:  &Config{Provider: ProviderGemini, Models: models, MaxOutputTokens: -5},
			wantErr: "max output tokens",
		},
		{
			name:    "no models",
			config:  &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}},
			wantErr: "no model configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigApply(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		model := &genai.GenerativeModel{}
		DefaultConfig().apply(model)

		require.NotNil(t, model.Temperature)
		assert.InDelta(t, 0.1, *model.Temperature, 1e-6)
		require.NotNil(t, model.MaxOutputTokens)
		assert.Equal(t, int32(2048), *model.MaxOutputTokens)
		assert.Empty(t, model.ResponseMIMEType)
	})

	t.Run("json mode without cap", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxOutputTokens = 0
		config.JSONMode = true

		model := &genai.GenerativeModel{}
		config.apply(model)

		assert.Nil(t, model.MaxOutputTokens)
		assert.Equal(t, "application/json", model.ResponseMIMEType)
	})
}
