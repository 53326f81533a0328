package extraction

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FindsObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(*testing.T, map[string]any)
	}{
		{
			name:  "plain JSON",
			input: `{"company": "Acme"}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Acme", obj["company"])
			},
		},
		{
			name:  "preamble before object",
			input: "sure, here you go: {\"company\":\"Google\",\"role\":\"SDE1\"}",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Google", obj["company"])
				assert.Equal(t, "SDE1", obj["role"])
			},
		},
		{
			name:  "trailing commentary",
			input: "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "value", obj["key"])
			},
		},
		{
			name:  "json code fence",
			input: "Here is the roadmap:\n```json\n{\"difficulty\": \"Hard\"}\n```\nGood luck!",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Hard", obj["difficulty"])
			},
		},
		{
			name:  "generic fence",
			input: "```\n{\"difficulty\": \"Easy\"}\n```",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Easy", obj["difficulty"])
			},
		},
		{
			name:  "fence without object falls back to whole text",
			input: "```text\nno json here\n```\nActual answer: {\"role\": \"SRE\"}",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "SRE", obj["role"])
			},
		},
		{
			name:  "object before a fence wins",
			input: "Answer: {\"company\": \"First\"}\n```json\n{\"company\": \"Second\"}\n```",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "First", obj["company"])
			},
		},
		{
			name:  "fence wins when the preamble has no object",
			input: "Answer below.\n```json\n{\"company\": \"Second\"}\n```\n{\"company\": \"Third\"}",
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Second", obj["company"])
			},
		},
		{
			name:  "braces inside strings",
			input: `Result: {"template": "Hello {name}!", "closing": "}"}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Hello {name}!", obj["template"])
				assert.Equal(t, "}", obj["closing"])
			},
		},
		{
			name:  "escaped quotes",
			input: `Result: {"message": "He said \"hi {there}\""}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, `He said "hi {there}"`, obj["message"])
			},
		},
		{
			name:  "apostrophe in prose",
			input: `Here's what I'd suggest: {"role": "SDE"}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "SDE", obj["role"])
			},
		},
		{
			name:  "first of multiple objects wins",
			input: `{"n": 1} and also {"n": 2}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, float64(1), obj["n"])
			},
		},
		{
			name:  "nested nulls and arrays preserved",
			input: `{"rounds": [{"type": null, "topics": []}], "evidence": {"key_skills": null}}`,
			validate: func(t *testing.T, obj map[string]any) {
				rounds, ok := obj["rounds"].([]any)
				require.True(t, ok)
				require.Len(t, rounds, 1)
				round := rounds[0].(map[string]any)
				assert.Contains(t, round, "type")
				assert.Nil(t, round["type"])
				assert.Equal(t, []any{}, round["topics"])
				evidence := obj["evidence"].(map[string]any)
				assert.Contains(t, evidence, "key_skills")
				assert.Nil(t, evidence["key_skills"])
			},
		},
		{
			name:  "trailing comma repaired",
			input: `Output: {"company": "Acme", "role": "SDE",}`,
			validate: func(t *testing.T, obj map[string]any) {
				assert.Equal(t, "Acme", obj["company"])
				assert.Equal(t, "SDE", obj["role"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Extract(tt.input)
			require.NoError(t, err)
			require.NotNil(t, obj)
			tt.validate(t, obj)
		})
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   \n\t"},
		{name: "refusal", input: "I cannot help with that."},
		{name: "unbalanced", input: `Here: {"company": "Google", "role": "SDE1"`},
		{name: "only closing brace", input: "oops } nothing here"},
		{name: "array instead of object", input: `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Extract(tt.input)
			require.Error(t, err)
			assert.Nil(t, obj)
			assert.True(t, errors.Is(err, ErrMalformed))

			var malformed *MalformedError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.input, malformed.Raw)
			assert.NotEmpty(t, malformed.Reason)
		})
	}
}

func TestFirstObjectSpan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: `{"a": 1}`, expected: `{"a": 1}`},
		{name: "nested", input: `x {"a": {"b": 2}} y`, expected: `{"a": {"b": 2}}`},
		{name: "stray closing brace first", input: `} {"a": 1}`, expected: `{"a": 1}`},
		{name: "unbalanced", input: `{"a": {"b": 2}`, expected: ""},
		{name: "none", input: "no braces", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, firstObjectSpan(tt.input))
		})
	}
}

func TestFencedBlock(t *testing.T) {
	block, ok := fencedBlock("intro\n```json\n{\"a\": 1}\n```\noutro")
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, block)

	block, ok = fencedBlock("```{\"a\": 1}```")
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, block)

	_, ok = fencedBlock("no fence")
	assert.False(t, ok)
}

func TestMalformedError_Snippet(t *testing.T) {
	long := strings.Repeat("x", 600)
	err := &MalformedError{Raw: long, Reason: "test"}

	assert.Len(t, err.Snippet(), snippetLength+3)
	assert.True(t, strings.HasSuffix(err.Snippet(), "..."))
	assert.Contains(t, err.Error(), "test")
}
