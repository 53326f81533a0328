package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client generates roadmap text from a prompt.
type Client interface {
	// GenerateContent returns the raw model answer for prompt.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient validates config and returns a client for its provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGemini(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// Gemini talks to the Google Gemini API.
type Gemini struct {
	client *genai.Client
	config *Config
}

// NewGemini opens a Gemini client authenticated with apiKey.
func NewGemini(ctx context.Context, config *Config, apiKey string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, config: config}, nil
}

// GenerateContent sends a single-turn prompt. The answer is returned as the
// model wrote it; fences and prose around the JSON are left for the caller.
func (g *Gemini) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := g.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := g.client.GenerativeModel(modelName)
	g.config.apply(model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", &BlockedError{Model: modelName, Reason: blockReason(blocked)}
		}
		return "", &GenerationError{Model: modelName, Cause: err}
	}
	return responseText(resp)
}

// GetModel returns the model name for a tier
func (g *Gemini) GetModel(tier ModelTier) string {
	return g.config.GetModel(tier)
}

func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// apply copies the generation settings onto a model handle.
func (c *Config) apply(model *genai.GenerativeModel) {
	model.SetTemperature(c.Temperature)
	if c.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.MaxOutputTokens)
	}
	if c.JSONMode {
		model.ResponseMIMEType = "application/json"
	}
}

func blockReason(e *genai.BlockedError) string {
	switch {
	case e.PromptFeedback != nil:
		return "prompt: " + e.PromptFeedback.BlockReason.String()
	case e.Candidate != nil:
		return "candidate: " + e.Candidate.FinishReason.String()
	default:
		return "unknown"
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: no content", ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts", ErrEmptyResponse)
	}
	return sb.String(), nil
}
