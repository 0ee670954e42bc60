// Package routes is the path table shared by the terminal UI and the HTTP
// API. It maps paths to views and gates the dashboard shell behind an
// active session.
package routes

import (
	"net/url"
	"strings"
)

// View names a page.
type View string

const (
	ViewLanding    View = "landing"
	ViewLogin      View = "login"
	ViewSignup     View = "signup"
	ViewPricing    View = "pricing"
	ViewCatalog    View = "catalog"
	ViewCourse     View = "course"
	ViewDashboard  View = "dashboard"
	ViewOnboarding View = "onboarding"
	ViewJourney    View = "journey"
	ViewLesson     View = "lesson"
	ViewAssessment View = "assessment"
	ViewProfile    View = "profile"
	ViewReports    View = "reports"
	ViewNotFound   View = "not-found"
)

// Route is one entry of the path table. Pattern segments starting with
// ':' bind a parameter.
type Route struct {
	Pattern string
	View    View
	Gated   bool
}

// Paths used for navigation.
const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathSignup     = "/signup"
	PathPricing    = "/pricing"
	PathCourses    = "/courses"
	PathDashboard  = "/dashboard"
	PathOnboarding = "/dashboard/onboarding"
	PathAssessment = "/dashboard/assessment"
	PathProfile    = "/dashboard/profile"
	PathReports    = "/dashboard/reports"
)

var table = []Route{
	{Pattern: "/", View: ViewLanding},
	{Pattern: "/login", View: ViewLogin},
	{Pattern: "/signup", View: ViewSignup},
	{Pattern: "/pricing", View: ViewPricing},
	{Pattern: "/courses", View: ViewCatalog},
	{Pattern: "/courses/:id", View: ViewCourse},
	{Pattern: "/dashboard", View: ViewDashboard, Gated: true},
	{Pattern: "/dashboard/onboarding", View: ViewOnboarding, Gated: true},
	{Pattern: "/dashboard/courses/:id", View: ViewJourney, Gated: true},
	{Pattern: "/dashboard/lessons/:id", View: ViewLesson, Gated: true},
	{Pattern: "/dashboard/assessment", View: ViewAssessment, Gated: true},
	{Pattern: "/dashboard/profile", View: ViewProfile, Gated: true},
	{Pattern: "/dashboard/reports", View: ViewReports, Gated: true},
}

// Table returns a copy of the path table.
func Table() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Match is the outcome of resolving a path.
type Match struct {
	Path     string            `json:"path"`
	View     View              `json:"view"`
	Params   map[string]string `json:"params,omitempty"`
	Query    url.Values        `json:"query,omitempty"`
	Gated    bool              `json:"gated"`
	Redirect string            `json:"redirect,omitempty"`
}

// Resolve maps a path (optionally with a query string) to a view. A gated
// path without a session resolves to the login view with Redirect set to
// /login?next=<path and query>. Unknown paths resolve to the not-found view.
func Resolve(rawPath string, sessionPresent bool) Match {
	path, query := splitQuery(rawPath)
	path = clean(path)

	for _, r := range table {
		params, ok := match(r.Pattern, path)
		if !ok {
			continue
		}
		if r.Gated && !sessionPresent {
			next := withQuery(path, query)
			return Match{
				Path:     PathLogin,
				View:     ViewLogin,
				Query:    url.Values{"next": {next}},
				Gated:    true,
				Redirect: LoginRedirect(next),
			}
		}
		return Match{Path: path, View: r.View, Params: params, Query: query, Gated: r.Gated}
	}
	return Match{Path: path, View: ViewNotFound, Query: query}
}

// LoginRedirect builds the login path that continues to next afterwards.
func LoginRedirect(next string) string {
	return PathLogin + "?" + url.Values{"next": {next}}.Encode()
}

// SafeNext returns next when it is a local gated path worth returning to,
// otherwise the dashboard.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return PathDashboard
	}
	m := Resolve(next, true)
	if m.View == ViewNotFound || m.View == ViewLogin || m.View == ViewSignup {
		return PathDashboard
	}
	return withQuery(m.Path, m.Query)
}

// CoursePath is the public page for a course.
func CoursePath(id string) string { return "/courses/" + url.PathEscape(id) }

// JourneyPath is the dashboard page for an enrolled course.
func JourneyPath(id string) string { return "/dashboard/courses/" + url.PathEscape(id) }

// LessonPath is the dashboard page for a lesson quiz.
func LessonPath(id string) string { return "/dashboard/lessons/" + url.PathEscape(id) }

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func splitQuery(raw string) (string, url.Values) {
	path, rawQuery, found := strings.Cut(raw, "?")
	if !found {
		return path, nil
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return path, nil
	}
	return path, q
}

func clean(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

func match(pattern, path string) (map[string]string, bool) {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			v, err := url.PathUnescape(xs[i])
			if err != nil || v == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = v
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return params, true
}
