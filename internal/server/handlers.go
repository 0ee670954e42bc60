package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/auth"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/store"
)

func (s *Server) registerRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(s.opts.AllowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "version": s.state.Version()})
		})

		api.POST("/auth/signup", s.signup)
		api.POST("/auth/login", s.login)
		api.GET("/session", s.session)
		api.GET("/routes/resolve", s.resolveRoute)

		api.GET("/courses", s.listCourses)
		api.GET("/courses/:id", s.getCourse)
		api.GET("/pricing", s.pricing)
		api.GET("/onboarding/questions", s.onboardingQuestions)
		api.GET("/assessment/questions", s.assessmentQuestions)

		api.GET("/events", func(c *gin.Context) {
			s.hub.serveWS(c.Writer, c.Request)
		})

		gated := api.Group("", s.requireSession())
		gated.POST("/auth/logout", s.logout)
		gated.GET("/dashboard", s.dashboard)
		gated.POST("/enrollments", s.enroll)
		gated.GET("/lessons/:id/quiz", s.lessonQuiz)
		gated.POST("/lessons/:id/complete", s.completeLesson)
		gated.POST("/assessments", s.submitAssessment)
		gated.POST("/onboarding/analyze", s.analyze)
		gated.POST("/courses/:id/journey", s.planJourney)
		gated.GET("/profile", s.profile)
		gated.GET("/reports", s.reports)
	}
}

// statusFor maps a failed store Result onto an HTTP status.
func statusFor(res appstate.Result) int {
	switch {
	case errors.Is(res.Err, appstate.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(res.Err, appstate.ErrEmailTaken), errors.Is(res.Err, appstate.ErrAnalysisRunning):
		return http.StatusConflict
	case errors.Is(res.Err, appstate.ErrInvalidCredentials), errors.Is(res.Err, appstate.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(res.Err, appstate.ErrUnknownCourse), errors.Is(res.Err, appstate.ErrUnknownLesson):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeResult(c *gin.Context, okStatus int, res appstate.Result, extra gin.H) {
	if !res.Success {
		c.JSON(statusFor(res), gin.H{"error": res.Message})
		return
	}
	body := gin.H{"success": true, "message": res.Message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(okStatus, body)
}

// userResponse is a user without credentials.
type userResponse struct {
	ID                 string                       `json:"id"`
	Email              string                       `json:"email"`
	Name               string                       `json:"name"`
	CreatedAt          time.Time                    `json:"created_at"`
	OnboardingComplete bool                         `json:"onboarding_complete"`
	ProfileSource      string                       `json:"profile_source,omitempty"`
	Mindprint          *store.MindprintData         `json:"mindprint,omitempty"`
	CodingGenome       *store.CodingGenomeData      `json:"coding_genome,omitempty"`
	LifeTrajectory     *store.LifeTrajectoryData    `json:"life_trajectory,omitempty"`
	OnboardingAnswers  []store.OnboardingAnswerData `json:"onboarding_answers,omitempty"`
}

func toUserResponse(u *appstate.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		CreatedAt:          u.CreatedAt,
		OnboardingComplete: u.OnboardingComplete,
		ProfileSource:      u.ProfileSource,
		Mindprint:          u.Mindprint,
		CodingGenome:       u.CodingGenome,
		LifeTrajectory:     u.LifeTrajectory,
		OnboardingAnswers:  u.OnboardingAnswers,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.state.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	s.writeSession(c, http.StatusCreated, res)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.state.Login(c.Request.Context(), req.Email, req.Password)
	s.writeSession(c, http.StatusOK, res)
}

// writeSession issues a token for the session a successful signup or
// login just started.
func (s *Server) writeSession(c *gin.Context, okStatus int, res appstate.Result) {
	if !res.Success {
		writeResult(c, okStatus, res, nil)
		return
	}
	sess := s.state.Session()
	if sess == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session after login"})
		return
	}
	token, exp, err := s.tokens.Issue(sess.ID, sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	writeResult(c, okStatus, res, gin.H{
		"token":      token,
		"expires_at": exp,
		"user":       toUserResponse(s.state.CurrentUser()),
	})
}

func (s *Server) logout(c *gin.Context) {
	writeResult(c, http.StatusOK, s.state.Logout(c.Request.Context()), nil)
}

func (s *Server) session(c *gin.Context) {
	if _, err := s.activeClaims(c); err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated":        true,
		"session":              s.state.Session(),
		"user":                 toUserResponse(s.state.CurrentUser()),
		"analysis_in_progress": s.state.AnalysisInProgress(),
		"version":              s.state.Version(),
	})
}

func (s *Server) resolveRoute(c *gin.Context) {
	_, err := s.activeClaims(c)
	c.JSON(http.StatusOK, routes.Resolve(c.DefaultQuery("path", "/"), err == nil))
}

func (s *Server) listCourses(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.AllCourses())
}

func (s *Server) getCourse(c *gin.Context) {
	course, err := catalog.GetCourse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (s *Server) pricing(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Plans())
}

func (s *Server) onboardingQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.OnboardingQuestions())
}

// assessmentQuestion hides the answer key; grading happens server side.
type assessmentQuestion struct {
	ID      string   `json:"id"`
	Topic   string   `json:"topic"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
}

func (s *Server) assessmentQuestions(c *gin.Context) {
	bank := catalog.AssessmentBank()
	out := make([]assessmentQuestion, len(bank))
	for i, q := range bank {
		out[i] = assessmentQuestion{ID: q.ID, Topic: q.Topic, Prompt: q.Prompt, Choices: q.Choices}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) dashboard(c *gin.Context) {
	p := s.state.Progress()
	var enrolled []catalog.Course
	for _, id := range p.EnrolledCourses {
		if course, err := catalog.GetCourse(id); err == nil {
			enrolled = append(enrolled, course)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"user":                 toUserResponse(s.state.CurrentUser()),
		"stats":                s.state.Stats(),
		"progress":             p,
		"enrolled_courses":     enrolled,
		"analysis_in_progress": s.state.AnalysisInProgress(),
	})
}

type enrollRequest struct {
	CourseID string `json:"course_id"`
}

func (s *Server) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	writeResult(c, http.StatusOK, s.state.EnrollCourse(c.Request.Context(), req.CourseID), gin.H{
		"enrolled_courses": s.state.Progress().EnrolledCourses,
	})
}

func quizKeyFor(c *gin.Context) quizKey {
	claims := c.MustGet(ctxClaimsKey).(auth.Claims)
	return quizKey{sessionID: claims.SessionID, lessonID: c.Param("id")}
}

// lessonQuiz serves a quiz and remembers it so the answers posted to
// completeLesson are graded against the same questions.
func (s *Server) lessonQuiz(c *gin.Context) {
	qs, source, err := s.coach.Quiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	s.rememberQuiz(quizKeyFor(c), qs)
	c.JSON(http.StatusOK, gin.H{"source": source, "questions": qs, "passing_percent": catalog.PassingPercent})
}

type completeRequest struct {
	Answers []int `json:"answers"`
}

// completeLesson grades the posted answers against the quiz last served
// for the lesson and marks the lesson done when they pass.
func (s *Server) completeLesson(c *gin.Context) {
	var req completeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers are required"})
		return
	}
	id := c.Param("id")
	if _, err := catalog.GetLesson(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	key := quizKeyFor(c)
	questions, ok := s.servedQuiz(key)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "fetch the lesson quiz first"})
		return
	}

	out := s.coach.SubmitQuiz(c.Request.Context(), id, questions, req.Answers)
	if !out.Passed {
		c.JSON(http.StatusOK, gin.H{"success": false, "passed": false, "correct": out.Correct, "total": out.Total, "message": out.Result.Message})
		return
	}
	if out.Result.Success {
		s.forgetQuiz(key)
	}
	writeResult(c, http.StatusOK, out.Result, gin.H{
		"passed":            true,
		"correct":           out.Correct,
		"total":             out.Total,
		"completed_lessons": s.state.Progress().CompletedLessons,
	})
}

type assessmentRequest struct {
	Answers map[string]int `json:"answers"`
}

func (s *Server) submitAssessment(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := s.coach.SubmitAssessment(c.Request.Context(), req.Answers)
	writeResult(c, http.StatusCreated, out.Result, gin.H{
		"score":          out.Score,
		"insight":        out.Insight,
		"insight_source": out.InsightSource,
	})
}

type analyzeRequest struct {
	Answers []ai.Answer `json:"answers"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prompts := make(map[string]string)
	for _, q := range catalog.OnboardingQuestions() {
		prompts[q.ID] = q.Prompt
	}
	for i := range req.Answers {
		if req.Answers[i].Question == "" {
			req.Answers[i].Question = prompts[req.Answers[i].QuestionID]
		}
	}

	res := s.state.StartAIAnalysis(c.Request.Context(), req.Answers)
	writeResult(c, http.StatusOK, res, gin.H{"user": toUserResponse(s.state.CurrentUser())})
}

func (s *Server) planJourney(c *gin.Context) {
	j, res := s.coach.PlanJourney(c.Request.Context(), c.Param("id"))
	var source string
	if res.Success {
		if saved := s.state.Progress().Journeys[c.Param("id")]; saved != nil {
			source = saved.Source
		}
	}
	writeResult(c, http.StatusOK, res, gin.H{"journey": j, "source": source})
}

func (s *Server) profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(s.state.CurrentUser())})
}

func (s *Server) reports(c *gin.Context) {
	report, source, err := s.coach.Report(c.Request.Context())
	if err != nil {
		if errors.Is(err, appstate.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ended"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report":             report,
		"source":             source,
		"stats":              s.state.Stats(),
		"assessment_history": s.state.Progress().AssessmentHistory,
	})
}
