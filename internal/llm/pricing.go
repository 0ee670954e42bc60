package llm

import (
	"sort"
	"strings"
)

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost prices a model ID. Vendor prefixes ("google/…") are dropped
// and dated or suffixed IDs resolve to the longest known family prefix,
// so "claude-haiku-4-5-20251001" prices as "claude-haiku-4-5".
func LookupCost(modelID string) (ModelCost, bool) {
	id := strings.ToLower(modelID)
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	if c, ok := modelCosts[id]; ok {
		return c, true
	}
	for _, family := range familiesByLength {
		if strings.HasPrefix(id, family) {
			return modelCosts[family], true
		}
	}
	return ModelCost{}, false
}

// modelCosts covers the families the providers default to or alias.
// Prices as published by the vendors, 2026-02.
var modelCosts = map[string]ModelCost{
	"gemini-2.0-flash":      {0.10, 0.40},
	"gemini-2.0-flash-lite": {0.075, 0.30},
	"gemini-2.5-flash":      {0.30, 2.50},
	"gemini-2.5-flash-lite": {0.10, 0.40},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.50, 3},
	"gemini-3-pro":          {2, 12},

	"gpt-4o":       {2.50, 10},
	"gpt-4o-mini":  {0.15, 0.60},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.40, 1.60},
	"gpt-4.1-nano": {0.10, 0.40},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.40},
	"o4-mini":      {1.10, 4.40},

	"claude-3-5-haiku":  {0.80, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},
}

var familiesByLength = func() []string {
	fams := make([]string, 0, len(modelCosts))
	for k := range modelCosts {
		fams = append(fams, k)
	}
	sort.Slice(fams, func(i, j int) bool {
		if len(fams[i]) != len(fams[j]) {
			return len(fams[i]) > len(fams[j])
		}
		return fams[i] < fams[j]
	})
	return fams
}()
