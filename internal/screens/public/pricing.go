package public

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

// PricingScreen lists the subscription plans.
type PricingScreen struct {
	plans    []catalog.Plan
	selected int
}

var _ screen.Screen = (*PricingScreen)(nil)

// NewPricing creates the pricing screen.
func NewPricing() *PricingScreen {
	p := &PricingScreen{plans: catalog.Plans()}
	for i, plan := range p.plans {
		if plan.Highlighted {
			p.selected = i
		}
	}
	return p
}

func (p *PricingScreen) Init() tea.Cmd {
	return nil
}

func (p *PricingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch kmsg.String() {
	case "left", "h", "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "right", "l", "down", "j":
		if p.selected < len(p.plans)-1 {
			p.selected++
		}
	case "enter":
		return p, router.Navigate(routes.PathSignup)
	}
	return p, nil
}

func (p *PricingScreen) View(width, height int) string {
	cardWidth := 24
	if layout.IsCompactWidth(width) {
		cardWidth = 22
	}

	cards := make([]string, len(p.plans))
	for i, plan := range p.plans {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(plan.Name))
		b.WriteString("\n")
		price := "Free"
		if plan.MonthlyPrice > 0 {
			price = fmt.Sprintf("$%d / month", plan.MonthlyPrice)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(price))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(plan.Tagline))
		b.WriteString("\n\n")
		for _, f := range plan.Features {
			b.WriteString("✓ " + f + "\n")
		}

		border := theme.Border
		if i == p.selected {
			border = theme.Primary
		} else if plan.Highlighted {
			border = theme.Secondary
		}
		cards[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(cardWidth).
			Padding(0, 1).
			Render(b.String())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n" +
		theme.Hint.Render("Every plan starts with the free onboarding analysis.")
	return components.Page(content, width, height)
}

func (p *PricingScreen) Title() string {
	return "Pricing"
}

func (p *PricingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Compare"},
		{Key: "Enter", Description: "Sign up"},
		{Key: "Esc", Description: "Back"},
	}
}
