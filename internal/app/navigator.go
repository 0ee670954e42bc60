package app

import (
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/screens/account"
	"github.com/abhisek/codegenome/internal/screens/dashboard"
	"github.com/abhisek/codegenome/internal/screens/learn"
	"github.com/abhisek/codegenome/internal/screens/onboarding"
	"github.com/abhisek/codegenome/internal/screens/public"
)

// navigator builds the screen for each view in the route table.
type navigator struct {
	coach *coach.Service
}

func (n navigator) SessionPresent() bool {
	return n.coach.State().Session() != nil
}

func (n navigator) ScreenFor(m routes.Match) screen.Screen {
	state := n.coach.State()
	switch m.View {
	case routes.ViewLanding:
		return public.NewLanding(state)
	case routes.ViewPricing:
		return public.NewPricing()
	case routes.ViewCatalog:
		return public.NewCatalog(state)
	case routes.ViewCourse:
		if c, err := catalog.GetCourse(m.Params["id"]); err == nil {
			return public.NewCourse(state, c)
		}
	case routes.ViewLogin:
		return account.NewLogin(state, m.Query.Get("next"))
	case routes.ViewSignup:
		return account.NewSignup(state)
	case routes.ViewDashboard:
		return dashboard.NewDashboard(state)
	case routes.ViewProfile:
		return dashboard.NewProfile(state)
	case routes.ViewReports:
		return dashboard.NewReports(n.coach)
	case routes.ViewOnboarding:
		return onboarding.New(state)
	case routes.ViewJourney:
		if c, err := catalog.GetCourse(m.Params["id"]); err == nil {
			return learn.NewJourney(n.coach, c)
		}
	case routes.ViewLesson:
		if l, err := catalog.GetLesson(m.Params["id"]); err == nil {
			return learn.NewLesson(n.coach, l)
		}
	case routes.ViewAssessment:
		return learn.NewAssessment(n.coach)
	}
	return public.NewNotFound(m.Path)
}
