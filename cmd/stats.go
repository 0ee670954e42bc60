package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics for the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("activity")

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		st := d.state
		fmt.Printf("Accounts:   %d\n", st.UserCount())
		fmt.Printf("State:      version %d\n", st.Version())

		u := st.CurrentUser()
		if u == nil {
			fmt.Println("Session:    none (log in from the app first)")
			return nil
		}
		fmt.Printf("Session:    %s <%s>\n", u.Name, u.Email)

		stats := st.Stats()
		fmt.Println()
		fmt.Printf("Enrolled courses:   %d\n", stats.EnrolledCourses)
		fmt.Printf("Completed lessons:  %d\n", stats.CompletedLessons)
		fmt.Printf("Assessments:        %d (average %d%%)\n", stats.Assessments, stats.AverageScore)

		if len(stats.CourseCompletion) > 0 {
			ids := make([]string, 0, len(stats.CourseCompletion))
			for id := range stats.CourseCompletion {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			progress := newReport("Course", "Progress", "Done").alignRight(2)
			for _, id := range ids {
				title := id
				if c, err := catalog.GetCourse(id); err == nil {
					title = c.Title
				}
				pct := stats.CourseCompletion[id]
				progress.add(truncate(title, 34), bar(pct, 20), fmt.Sprintf("%d%%", pct))
			}
			fmt.Println()
			fmt.Println(progress)
		}

		if limit <= 0 {
			return nil
		}
		events, err := d.store.EventRepo().QueryActivity(cmd.Context(), u.ID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query activity: %w", err)
		}
		if len(events) == 0 {
			return nil
		}
		activity := newReport("Time", "Action", "", "Detail")
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			activity.add(e.Timestamp.Local().Format(timeLayout), e.Action, ok, e.Detail)
		}
		fmt.Println()
		fmt.Println("Recent activity")
		fmt.Println(activity)
		return nil
	},
}

func bar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func init() {
	statsCmd.Flags().IntP("activity", "a", 10, "Number of recent activity events to show (0 hides them)")
}
