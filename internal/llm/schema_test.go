package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var lessonSchema = &Schema{
	Name: "test-lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string"},
			"minutes": map[string]any{"type": "integer", "minimum": 1},
			"level":   map[string]any{"type": "string", "enum": []any{"beginner", "advanced"}},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"prompt": map[string]any{"type": "string"}},
					"required":   []any{"prompt"},
				},
			},
		},
		"required": []any{"title", "minutes"},
	},
}

func TestSchemaCheck(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		ok    bool
	}{
		{"valid", `{"title":"Loops","minutes":10,"level":"beginner","quiz":[{"prompt":"?"}]}`, true},
		{"optional fields omitted", `{"title":"Loops","minutes":10}`, true},
		{"missing required", `{"title":"Loops"}`, false},
		{"wrong type", `{"title":"Loops","minutes":"ten"}`, false},
		{"below minimum", `{"title":"Loops","minutes":0}`, false},
		{"bad enum", `{"title":"Loops","minutes":1,"level":"expert"}`, false},
		{"nested item missing field", `{"title":"Loops","minutes":1,"quiz":[{}]}`, false},
		{"malformed", `{"title":`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lessonSchema.Check([]byte(tt.reply))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestSchemaCheck_NilSchemaAcceptsAnything(t *testing.T) {
	var s *Schema
	assert.NoError(t, s.Check([]byte("not json")))
}

func TestSchemaCheck_BrokenDefinition(t *testing.T) {
	broken := &Schema{Name: "broken", Definition: map[string]any{"type": 12}}
	assert.ErrorIs(t, broken.Check([]byte(`{}`)), ErrInvalidResponse)
}
