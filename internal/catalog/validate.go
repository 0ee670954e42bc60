package catalog

import (
	"errors"
	"fmt"
)

// Validate checks the static tables for structural issues and returns a
// combined error describing every problem found.
func Validate() error {
	var errs []error

	seen := make(map[string]bool)
	for _, course := range c.courses {
		if seen[course.ID] {
			errs = append(errs, fmt.Errorf("duplicate course ID: %q", course.ID))
		}
		seen[course.ID] = true
		if len(course.Lessons) == 0 {
			errs = append(errs, fmt.Errorf("course %q has no lessons", course.ID))
		}
		for _, l := range course.Lessons {
			if seen[l.ID] {
				errs = append(errs, fmt.Errorf("duplicate lesson ID: %q", l.ID))
			}
			seen[l.ID] = true
			errs = append(errs, validateQuiz(l.ID, l.Quiz)...)
		}
	}

	ids := make(map[string]bool)
	for _, q := range assessmentBank {
		if ids[q.ID] {
			errs = append(errs, fmt.Errorf("duplicate assessment question: %q", q.ID))
		}
		ids[q.ID] = true
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			errs = append(errs, fmt.Errorf("assessment question %q: answer %d out of range", q.ID, q.Answer))
		}
	}

	return errors.Join(errs...)
}

func validateQuiz(lessonID string, quiz []QuizQuestion) []error {
	var errs []error
	if len(quiz) == 0 {
		errs = append(errs, fmt.Errorf("lesson %q has no quiz", lessonID))
	}
	for i, q := range quiz {
		if len(q.Choices) < 2 {
			errs = append(errs, fmt.Errorf("lesson %q question %d: need at least 2 choices", lessonID, i))
		}
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			errs = append(errs, fmt.Errorf("lesson %q question %d: answer %d out of range", lessonID, i, q.Answer))
		}
	}
	return errs
}
