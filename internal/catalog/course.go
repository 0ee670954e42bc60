// Package catalog holds the static content tables: courses with their
// lessons and quizzes, onboarding questions, the assessment bank and
// pricing plans.
package catalog

import (
	"fmt"
	"slices"
)

// Level is a course difficulty band.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// PassingPercent is the quiz score needed to complete a lesson.
const PassingPercent = 70

// Course is a catalog entry with its ordered lessons.
type Course struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Level   Level    `json:"level"`
	Tags    []string `json:"tags"`
	Hours   int      `json:"hours"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson is one unit of a course, closed by a multiple-choice quiz.
type Lesson struct {
	ID       string         `json:"id"`
	CourseID string         `json:"course_id"`
	Title    string         `json:"title"`
	Summary  string         `json:"summary"`
	Content  string         `json:"content"`
	Minutes  int            `json:"minutes"`
	Quiz     []QuizQuestion `json:"quiz"`
}

// QuizQuestion is a multiple-choice question; Answer indexes Choices.
// The answer key and explanation never leave the process as JSON.
type QuizQuestion struct {
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices"`
	Answer      int      `json:"-"`
	Explanation string   `json:"-"`
}

// catalog holds the course table with precomputed indices.
type catalog struct {
	courses        []Course
	byID           map[string]*Course
	lessons        map[string]*Lesson
	courseOfLesson map[string]string
}

// c is the package-level catalog, built by init() in courses_seed.go.
var c *catalog

func buildCatalog(courses []Course) *catalog {
	cat := &catalog{
		courses:        courses,
		byID:           make(map[string]*Course, len(courses)),
		lessons:        make(map[string]*Lesson),
		courseOfLesson: make(map[string]string),
	}
	for i := range cat.courses {
		course := &cat.courses[i]
		cat.byID[course.ID] = course
		for j := range course.Lessons {
			l := &course.Lessons[j]
			l.CourseID = course.ID
			cat.lessons[l.ID] = l
			cat.courseOfLesson[l.ID] = course.ID
		}
	}
	return cat
}

// AllCourses returns every course in display order.
func AllCourses() []Course {
	return slices.Clone(c.courses)
}

// GetCourse returns a course by ID, or error if not found.
func GetCourse(id string) (Course, error) {
	course, ok := c.byID[id]
	if !ok {
		return Course{}, fmt.Errorf("course not found: %q", id)
	}
	return *course, nil
}

// GetLesson returns a lesson by ID, or error if not found.
func GetLesson(id string) (Lesson, error) {
	l, ok := c.lessons[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson not found: %q", id)
	}
	return *l, nil
}

// CourseForLesson returns the course that contains the lesson.
func CourseForLesson(lessonID string) (Course, error) {
	id, ok := c.courseOfLesson[lessonID]
	if !ok {
		return Course{}, fmt.Errorf("lesson not found: %q", lessonID)
	}
	return GetCourse(id)
}

// HasCourse reports whether id names a catalog course.
func HasCourse(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// HasLesson reports whether id names a catalog lesson.
func HasLesson(id string) bool {
	_, ok := c.lessons[id]
	return ok
}

// CompletionPercent is the share of a course's lessons present in completed.
// Repeated completions of the same lesson count once.
func CompletionPercent(courseID string, completed []string) int {
	course, ok := c.byID[courseID]
	if !ok || len(course.Lessons) == 0 {
		return 0
	}
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}
	n := 0
	for _, l := range course.Lessons {
		if done[l.ID] {
			n++
		}
	}
	return n * 100 / len(course.Lessons)
}

// GradeQuiz counts correct answers and reports whether the lesson passes.
// answers[i] is the chosen index for questions[i]; missing answers are wrong.
func GradeQuiz(questions []QuizQuestion, answers []int) (correct int, passed bool) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Answer {
			correct++
		}
	}
	if len(questions) == 0 {
		return 0, true
	}
	return correct, correct*100/len(questions) >= PassingPercent
}
