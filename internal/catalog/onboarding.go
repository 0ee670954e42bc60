package catalog

import "slices"

// QuestionKind says how an onboarding question is answered.
type QuestionKind string

const (
	KindChoice QuestionKind = "choice"
	KindText   QuestionKind = "text"
)

// OnboardingQuestion is one step of the onboarding flow whose answers feed
// profile analysis.
type OnboardingQuestion struct {
	ID      string
	Prompt  string
	Kind    QuestionKind
	Options []string
}

var onboardingQuestions = []OnboardingQuestion{
	{ID: "experience", Prompt: "How much programming have you done?", Kind: KindChoice,
		Options: []string{"None yet", "A few tutorials", "Built small projects", "I code professionally"}},
	{ID: "goal", Prompt: "What do you want coding to do for you?", Kind: KindChoice,
		Options: []string{"Land a first tech job", "Automate my current work", "Build my own product", "Level up as an engineer"}},
	{ID: "languages", Prompt: "Which languages have you touched?", Kind: KindText},
	{ID: "stuck", Prompt: "When you get stuck on a problem, what do you usually do?", Kind: KindChoice,
		Options: []string{"Keep trying on my own", "Search for an answer", "Ask someone", "Take a break and return"}},
	{ID: "focus", Prompt: "How long can you usually focus on one task?", Kind: KindChoice,
		Options: []string{"Under 15 minutes", "About 30 minutes", "An hour", "Several hours"}},
	{ID: "time", Prompt: "How many hours per week can you study?", Kind: KindChoice,
		Options: []string{"1-2", "3-5", "6-10", "More than 10"}},
	{ID: "curiosity", Prompt: "Describe something you would love to build.", Kind: KindText},
}

// OnboardingQuestions returns the onboarding flow in order.
func OnboardingQuestions() []OnboardingQuestion {
	return slices.Clone(onboardingQuestions)
}
