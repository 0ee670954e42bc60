package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/catalog"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		lessons, _ := cmd.Flags().GetBool("lessons")

		if err := catalog.Validate(); err != nil {
			return fmt.Errorf("catalog is inconsistent: %w", err)
		}

		level = strings.ToLower(level)
		out := newReport("ID", "Title", "Level", "Lessons", "Hours").alignRight(3, 4)
		for _, c := range catalog.AllCourses() {
			if level != "" && string(c.Level) != level {
				continue
			}
			out.add(c.ID, truncate(c.Title, 34), c.Level, len(c.Lessons), c.Hours)
			if !lessons {
				continue
			}
			for i, l := range c.Lessons {
				out.add(fmt.Sprintf("  %d. %s", i+1, l.ID), truncate(l.Title, 34),
					"", fmt.Sprintf("%d quiz", len(l.Quiz)), fmt.Sprintf("%dm", l.Minutes))
			}
		}
		if len(out.rows) == 0 {
			fmt.Printf("No courses at level %q.\n", level)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	coursesCmd.Flags().String("level", "", "Filter by level: beginner, intermediate or advanced")
	coursesCmd.Flags().BoolP("lessons", "l", false, "Show each course's lessons")
}
