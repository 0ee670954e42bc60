package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// report is a plain-text table written to stdout by the inspection
// commands. Numeric columns are right-aligned.
type report struct {
	headers []string
	numeric map[int]bool
	rows    [][]string
	footer  []string
}

func newReport(headers ...string) *report {
	return &report{headers: headers, numeric: map[int]bool{}}
}

func (r *report) alignRight(cols ...int) *report {
	for _, c := range cols {
		r.numeric[c] = true
	}
	return r
}

func (r *report) add(cells ...any) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	r.rows = append(r.rows, row)
}

func (r *report) total(cells ...any) {
	r.add(cells...)
	r.footer = r.rows[len(r.rows)-1]
}

func (r *report) String() string {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	last := len(r.rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		BorderColumn(false).
		Headers(r.headers...).
		Rows(r.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = head
			} else if r.footer != nil && row == last {
				s = s.Bold(true)
			}
			if r.numeric[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
