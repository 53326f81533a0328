package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{
			name:    "nil response",
			wantErr: true,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: true,
		},
		{
			name:    "candidate without content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: true,
		},
		{
			name: "non-text parts only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
				}},
			},
			wantErr: true,
		},
		{
			name: "joins text parts of the first candidate",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("Sure: "), genai.Text(`{"company": "Acme"}`)}}},
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
				},
			},
			want: `Sure: {"company": "Acme"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockReason(t *testing.T) {
	prompt := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	assert.Equal(t, "prompt: "+genai.BlockReasonSafety.String(), blockReason(prompt))

	candidate := &genai.BlockedError{Candidate: &genai.Candidate{FinishReason: genai.FinishReasonRecitation}}
	assert.Equal(t, "candidate: "+genai.FinishReasonRecitation.String(), blockReason(candidate))

	assert.Equal(t, "unknown", blockReason(&genai.BlockedError{}))
}

func TestErrors(t *testing.T) {
	blocked := &BlockedError{Model: "gemini-2.0-flash", Reason: "prompt: BlockReasonSafety"}
	assert.True(t, errors.Is(blocked, ErrBlocked))
	assert.Contains(t, blocked.Error(), "gemini-2.0-flash")

	cause := errors.New("quota exceeded")
	genErr := &GenerationError{Model: "gemini-2.0-flash", Cause: cause}
	assert.True(t, errors.Is(genErr, cause))
	assert.Equal(t, "failed to generate content with gemini-2.0-flash: quota exceeded", genErr.Error())
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		_, err := NewGemini(context.Background(), DefaultConfig(), key)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	}
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
