package catalog

import (
	"slices"
	"sort"
)

// AssessmentQuestion is a skills-assessment item tagged with a topic.
type AssessmentQuestion struct {
	ID      string
	Topic   string
	Prompt  string
	Choices []string
	Answer  int
}

// AssessmentScore is the graded outcome of an assessment attempt.
type AssessmentScore struct {
	Score   int
	Correct int
	Total   int
	// Heatmap is the percent correct per topic.
	Heatmap map[string]int
}

var assessmentBank = []AssessmentQuestion{
	{ID: "a-vars-1", Topic: "variables", Prompt: "After a = 2; b = a; a = 3, what is b?", Choices: []string{"2", "3", "5", "undefined"}, Answer: 0},
	{ID: "a-vars-2", Topic: "variables", Prompt: "Which name is a valid identifier in most languages?", Choices: []string{"2fast", "my-var", "total_count", "class"}, Answer: 2},
	{ID: "a-loops-1", Topic: "loops", Prompt: "A loop from 0 while i < 5, step 1, runs how many times?", Choices: []string{"4", "5", "6", "infinite"}, Answer: 1},
	{ID: "a-loops-2", Topic: "loops", Prompt: "Which construct stops a loop immediately?", Choices: []string{"continue", "break", "return false", "skip"}, Answer: 1},
	{ID: "a-funcs-1", Topic: "functions", Prompt: "A function that calls itself is?", Choices: []string{"iterative", "recursive", "variadic", "pure"}, Answer: 1},
	{ID: "a-funcs-2", Topic: "functions", Prompt: "A pure function must not?", Choices: []string{"return values", "take arguments", "have side effects", "be short"}, Answer: 2},
	{ID: "a-ds-1", Topic: "data-structures", Prompt: "Which structure is FIFO?", Choices: []string{"stack", "queue", "tree", "set"}, Answer: 1},
	{ID: "a-ds-2", Topic: "data-structures", Prompt: "Best structure for membership tests?", Choices: []string{"list", "set", "queue", "linked list"}, Answer: 1},
	{ID: "a-algo-1", Topic: "algorithms", Prompt: "Binary search requires input that is?", Choices: []string{"unique", "sorted", "numeric", "small"}, Answer: 1},
	{ID: "a-algo-2", Topic: "algorithms", Prompt: "Merge sort runs in?", Choices: []string{"O(n)", "O(n log n)", "O(n^2)", "O(log n)"}, Answer: 1},
}

// AssessmentBank returns the assessment questions in order.
func AssessmentBank() []AssessmentQuestion {
	return slices.Clone(assessmentBank)
}

// AssessmentTopics returns the distinct topics, sorted.
func AssessmentTopics() []string {
	seen := map[string]bool{}
	var topics []string
	for _, q := range assessmentBank {
		if !seen[q.Topic] {
			seen[q.Topic] = true
			topics = append(topics, q.Topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// ScoreAssessment grades answers keyed by question ID against the whole
// bank. Unanswered or unknown-choice answers count as wrong.
func ScoreAssessment(answers map[string]int) AssessmentScore {
	perTopic := map[string][2]int{} // correct, total
	correct := 0
	for _, q := range assessmentBank {
		t := perTopic[q.Topic]
		t[1]++
		if a, ok := answers[q.ID]; ok && a == q.Answer {
			t[0]++
			correct++
		}
		perTopic[q.Topic] = t
	}

	heatmap := make(map[string]int, len(perTopic))
	for topic, t := range perTopic {
		heatmap[topic] = t[0] * 100 / t[1]
	}

	total := len(assessmentBank)
	score := 0
	if total > 0 {
		score = (correct*100 + total/2) / total
	}
	return AssessmentScore{Score: score, Correct: correct, Total: total, Heatmap: heatmap}
}
