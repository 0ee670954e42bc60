package ai

import "github.com/abhisek/codegenome/internal/llm"

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func score(desc string) map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100, "description": desc}
}

// ProfileSchema describes the Mindprint, Coding Genome and Life Trajectory
// produced from onboarding answers.
var ProfileSchema = &llm.Schema{
	Name:        "learner-profile",
	Description: "Learning traits, technical level and career trajectory of a learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mindprint": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"focus":      score("Ability to sustain attention"),
					"resilience": score("Persistence when stuck"),
					"openness":   score("Curiosity about new ideas"),
					"summary":    map[string]any{"type": "string", "description": "Two sentences about how this person learns"},
				},
				"required":             []any{"focus", "resilience", "openness", "summary"},
				"additionalProperties": false,
			},
			"coding_genome": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"level": map[string]any{
						"type": "string",
						"enum": []any{"beginner", "intermediate", "advanced"},
					},
					"strengths":           stringArray("Technical strengths"),
					"growth_areas":        stringArray("Skills to develop next"),
					"preferred_languages": stringArray("Languages the learner knows or wants"),
				},
				"required":             []any{"level", "strengths", "growth_areas", "preferred_languages"},
				"additionalProperties": false,
			},
			"life_trajectory": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"goal":       map[string]any{"type": "string"},
					"horizon":    map[string]any{"type": "string", "description": "Time frame, e.g. 6 months"},
					"milestones": stringArray("Ordered milestones toward the goal"),
				},
				"required":             []any{"goal", "horizon", "milestones"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"mindprint", "coding_genome", "life_trajectory"},
		"additionalProperties": false,
	},
}

// JourneySchema describes a weekly schedule through one course.
var JourneySchema = &llm.Schema{
	Name:        "course-journey",
	Description: "Week-by-week study plan for a course",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pace": map[string]any{"type": "string", "enum": []any{"relaxed", "steady", "intensive"}},
			"weeks": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"week":       map[string]any{"type": "integer", "minimum": 1},
						"theme":      map[string]any{"type": "string"},
						"lesson_ids": stringArray("Lesson IDs from the course, in order"),
						"hours":      map[string]any{"type": "integer", "minimum": 0},
					},
					"required":             []any{"week", "theme", "lesson_ids", "hours"},
					"additionalProperties": false,
				},
			},
			"milestones": stringArray("Checkpoints across the journey"),
		},
		"required":             []any{"pace", "weeks", "milestones"},
		"additionalProperties": false,
	},
}

// QuizSchema describes generated multiple-choice questions.
var QuizSchema = &llm.Schema{
	Name:        "lesson-quiz",
	Description: "Multiple-choice questions checking a lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt":       map[string]any{"type": "string"},
						"choices":      stringArray("Exactly 4 options"),
						"answer_index": map[string]any{"type": "integer", "minimum": 0},
						"explanation":  map[string]any{"type": "string"},
					},
					"required":             []any{"prompt", "choices", "answer_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// InsightSchema describes the interpretation of an assessment result.
var InsightSchema = &llm.Schema{
	Name:        "assessment-insight",
	Description: "Interpretation of a skills assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":         map[string]any{"type": "string"},
			"strengths":       stringArray("Topics the learner handles well"),
			"gaps":            stringArray("Topics needing work"),
			"recommendations": stringArray("Concrete next actions"),
		},
		"required":             []any{"summary", "strengths", "gaps", "recommendations"},
		"additionalProperties": false,
	},
}

// ReportSchema describes a progress report.
var ReportSchema = &llm.Schema{
	Name:        "progress-report",
	Description: "Narrative progress report for a learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline":   map[string]any{"type": "string"},
			"highlights": stringArray("What went well"),
			"next_steps": stringArray("What to do next"),
		},
		"required":             []any{"headline", "highlights", "next_steps"},
		"additionalProperties": false,
	},
}
