package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidate_SeedIsConsistent(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
}

func TestGetCourse_Exists(t *testing.T) {
	course, err := GetCourse("python-foundations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.Title != "Python Foundations" {
		t.Errorf("title = %q", course.Title)
	}
	if len(course.Lessons) == 0 {
		t.Fatal("expected lessons")
	}
	for _, l := range course.Lessons {
		if l.CourseID != course.ID {
			t.Errorf("lesson %q course id = %q", l.ID, l.CourseID)
		}
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	if _, err := GetCourse("cobol-for-cats"); err == nil {
		t.Fatal("expected error for unknown course")
	}
	if HasCourse("cobol-for-cats") {
		t.Error("HasCourse reported an unknown course")
	}
}

func TestGetLessonAndCourseForLesson(t *testing.T) {
	l, err := GetLesson("go-channels")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.CourseID != "go-concurrency" {
		t.Errorf("course id = %q", l.CourseID)
	}
	course, err := CourseForLesson("go-channels")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.ID != "go-concurrency" {
		t.Errorf("course = %q", course.ID)
	}
	if _, err := CourseForLesson("missing"); err == nil {
		t.Error("expected error for unknown lesson")
	}
}

func TestAllCourses_ReturnsCopy(t *testing.T) {
	all := AllCourses()
	all[0].Title = "mutated"
	if AllCourses()[0].Title == "mutated" {
		t.Fatal("AllCourses must not expose internal storage")
	}
}

func TestCompletionPercent_CountsRepeatsOnce(t *testing.T) {
	got := CompletionPercent("python-foundations", []string{"py-variables", "py-variables", "js-basics"})
	if got != 33 {
		t.Errorf("completion = %d, want 33", got)
	}
	if CompletionPercent("unknown", nil) != 0 {
		t.Error("unknown course should be 0")
	}
}

func TestGradeQuiz(t *testing.T) {
	l, _ := GetLesson("py-variables")
	answers := make([]int, len(l.Quiz))
	for i, q := range l.Quiz {
		answers[i] = q.Answer
	}

	correct, passed := GradeQuiz(l.Quiz, answers)
	if correct != len(l.Quiz) || !passed {
		t.Errorf("all correct: got %d passed=%v", correct, passed)
	}

	correct, passed = GradeQuiz(l.Quiz, answers[:1])
	if correct != 1 || passed {
		t.Errorf("one answer: got %d passed=%v", correct, passed)
	}
}

func TestScoreAssessment(t *testing.T) {
	answers := map[string]int{}
	for _, q := range AssessmentBank() {
		if q.Topic == "loops" || q.Topic == "variables" {
			answers[q.ID] = q.Answer
		}
	}
	answers["a-funcs-1"] = 1 // correct
	answers["a-funcs-2"] = 0 // wrong

	got := ScoreAssessment(answers)
	if got.Total != len(AssessmentBank()) {
		t.Fatalf("total = %d", got.Total)
	}
	if got.Correct != 5 {
		t.Errorf("correct = %d, want 5", got.Correct)
	}
	if got.Score != 50 {
		t.Errorf("score = %d, want 50", got.Score)
	}
	want := map[string]int{"variables": 100, "loops": 100, "functions": 50, "data-structures": 0, "algorithms": 0}
	for topic, pct := range want {
		if got.Heatmap[topic] != pct {
			t.Errorf("heatmap[%s] = %d, want %d", topic, got.Heatmap[topic], pct)
		}
	}
}

func TestScoreAssessment_Empty(t *testing.T) {
	got := ScoreAssessment(nil)
	if got.Score != 0 || got.Correct != 0 {
		t.Errorf("empty answers = %+v", got)
	}
	if len(got.Heatmap) != len(AssessmentTopics()) {
		t.Errorf("heatmap topics = %d, want %d", len(got.Heatmap), len(AssessmentTopics()))
	}
}

func TestOnboardingQuestions(t *testing.T) {
	qs := OnboardingQuestions()
	if len(qs) == 0 {
		t.Fatal("expected onboarding questions")
	}
	for _, q := range qs {
		if q.Kind == KindChoice && len(q.Options) < 2 {
			t.Errorf("question %q has too few options", q.ID)
		}
	}
}

func TestPlans_OneHighlighted(t *testing.T) {
	n := 0
	for _, p := range Plans() {
		if p.Highlighted {
			n++
		}
	}
	if n != 1 {
		t.Errorf("highlighted plans = %d, want 1", n)
	}
}

func TestCourseJSON_HidesAnswerKey(t *testing.T) {
	course, err := GetCourse("python-foundations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := json.Marshal(course)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, key := range []string{`"id":`, `"lessons":`, `"course_id":`, `"quiz":`, `"choices":`} {
		if !strings.Contains(body, key) {
			t.Errorf("missing %s in %s", key, body)
		}
	}
	for _, key := range []string{`"answer"`, `"Answer"`, `"explanation"`, `"ID"`} {
		if strings.Contains(body, key) {
			t.Errorf("unexpected %s in course JSON", key)
		}
	}
}
