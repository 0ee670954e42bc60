package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
		found bool
	}{
		{"gemini-2.5-flash", ModelCost{0.30, 2.50}, true},
		{"gemini-2.5-flash-lite", ModelCost{0.10, 0.40}, true},
		{"claude-haiku-4-5-20251001", ModelCost{1, 5}, true},
		{"gpt-4.1-mini-2025-04-14", ModelCost{0.40, 1.60}, true},
		{"google/gemini-2.5-pro", ModelCost{1.25, 10}, true},
		{"GPT-4O", ModelCost{2.50, 10}, true},
		{"llama-3-70b", ModelCost{}, false},
		{"", ModelCost{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, ok := LookupCost(tt.model)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 2, OutputPerMTok: 8}
	assert.InDelta(t, 0.006, c.Cost(1000, 500), 1e-9)
	assert.Zero(t, ModelCost{}.Cost(1000, 1000))
}
