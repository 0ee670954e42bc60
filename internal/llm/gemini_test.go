package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":                 "object",
		"description":          "A quiz",
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt":  map[string]any{"type": "string"},
						"answer":  map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
						"choices": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"prompt", "answer"},
				},
			},
			"difficulty": map[string]any{"type": "string", "enum": []string{"easy", "hard"}},
		},
		"required": []string{"questions"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "A quiz", s.Description)
	assert.Equal(t, []string{"difficulty", "questions"}, s.PropertyOrdering)
	assert.Equal(t, []string{"questions"}, s.Required)
	assert.Equal(t, []string{"easy", "hard"}, s.Properties["difficulty"].Enum)

	questions := s.Properties["questions"]
	require.NotNil(t, questions.MinItems)
	assert.EqualValues(t, 1, *questions.MinItems)
	assert.EqualValues(t, 10, *questions.MaxItems)

	item := questions.Items
	assert.Equal(t, []string{"answer", "choices", "prompt"}, item.PropertyOrdering)
	answer := item.Properties["answer"]
	assert.Equal(t, genai.TypeInteger, answer.Type)
	require.NotNil(t, answer.Minimum)
	assert.Equal(t, 0.0, *answer.Minimum)
	assert.Equal(t, 3.0, *answer.Maximum)
	assert.Equal(t, genai.TypeString, item.Properties["choices"].Items.Type)
}

func TestNewGeminiProvider(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "g-key", Model: "gemini-lite"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-lite", p.ModelID())

	p, err = NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "g-key", Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelID())
}
