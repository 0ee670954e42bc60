package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview an LLM-generated quiz for a lesson (no database)",
	Long: `Generate and interactively answer a quiz for a specific lesson.

This is a stateless developer tool with no database, progress or events.
Useful for evaluating quiz quality against the built-in lesson content.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("lesson", "", "Lesson ID (required)")
	previewCmd.Flags().Int("count", 4, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("lesson")
}

func runPreview(cmd *cobra.Command, args []string) error {
	lessonID, _ := cmd.Flags().GetString("lesson")
	count, _ := cmd.Flags().GetInt("count")

	lesson, err := catalog.GetLesson(lessonID)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// No EventRepo and no cache: nothing is recorded.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	client := ai.New(provider, ai.Config{
		MaxTokens:        cfg.AI.MaxTokens,
		Temperature:      cfg.AI.Temperature,
		StructuredOutput: cfg.AI.StructuredOutput,
	})

	course, _ := catalog.CourseForLesson(lesson.ID)
	fmt.Printf("Lesson: %s · %s (%s)\n", lesson.ID, lesson.Title, course.Title)
	fmt.Printf("Generating %d questions...\n\n", count)

	questions, err := client.GenerateQuiz(ctx, lesson, count)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]int, len(questions))
	for i, q := range questions {
		answers[i] = -1

		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Prompt)
		for j, c := range q.Choices {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		text := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(text)
		if text == "" || err != nil || n < 1 || n > len(q.Choices) {
			fmt.Print("(skipped)\n\n")
			continue
		}
		answers[i] = n - 1

		if answers[i] == q.Answer {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Choices[q.Answer])
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	correct, passed := catalog.GradeQuiz(questions, answers)
	verdict := "not passed"
	if passed {
		verdict = "passed"
	}
	fmt.Printf("── Summary: %d/%d correct, %s ──\n", correct, len(questions), verdict)
	return nil
}
