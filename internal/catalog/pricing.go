package catalog

import "slices"

// Plan is a pricing tier shown on the pricing page.
type Plan struct {
	ID           string
	Name         string
	MonthlyPrice int // USD
	Tagline      string
	Features     []string
	Highlighted  bool
}

var plans = []Plan{
	{
		ID: "explorer", Name: "Explorer", MonthlyPrice: 0,
		Tagline:  "Try the platform at your own pace.",
		Features: []string{"Two starter courses", "Lesson quizzes", "One skills assessment"},
	},
	{
		ID: "builder", Name: "Builder", MonthlyPrice: 19,
		Tagline:     "For learners committed to a goal.",
		Features:    []string{"Full course catalog", "AI Mindprint and Coding Genome", "Personal journeys", "Unlimited assessments"},
		Highlighted: true,
	},
	{
		ID: "mentor", Name: "Mentor", MonthlyPrice: 49,
		Tagline:  "Guided growth with AI progress reports.",
		Features: []string{"Everything in Builder", "Weekly AI progress reports", "Priority model access", "Career trajectory planning"},
	},
}

// Plans returns the pricing plans in display order.
func Plans() []Plan {
	return slices.Clone(plans)
}
