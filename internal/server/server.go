// Package server exposes the platform over a local JSON API for a browser
// front end, with a websocket feed of state changes.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/auth"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/coach"
)

const (
	shutdownTimeout = 10 * time.Second
	// DefaultPollInterval is how often the server looks for snapshots
	// written by another process.
	DefaultPollInterval = 2 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	PollInterval   time.Duration
}

// Server is the HTTP API.
type Server struct {
	state  *appstate.Store
	coach  *coach.Service
	tokens *auth.Tokens
	hub    *Hub
	opts   Options
	engine *gin.Engine

	quizMu  sync.Mutex
	quizzes map[quizKey][]catalog.QuizQuestion
}

// quizKey identifies the quiz last served to a session for a lesson.
type quizKey struct {
	sessionID string
	lessonID  string
}

// New builds the gin engine and subscribes the websocket hub to state
// changes.
func New(c *coach.Service, tokens *auth.Tokens, opts Options) *Server {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	s := &Server{
		state:  c.State(),
		coach:  c,
		tokens: tokens,
		hub:    NewHub(opts.AllowedOrigins),
		opts:   opts,

		quizzes: make(map[quizKey][]catalog.QuizQuestion),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	s.registerRoutes(router)
	s.engine = router

	s.state.Subscribe(s.hub.Publish)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.hub.Run(ctx)
	go s.watch(ctx)

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logrus.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Warnf("http shutdown: %v", err)
		return err
	}
	return nil
}

// watch adopts snapshots persisted by other processes, such as the TUI
// running against the same database, so websocket clients hear about them.
func (s *Server) watch(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.state.Refresh(ctx); err != nil && ctx.Err() == nil {
				logrus.WithError(err).Warn("refresh state")
			}
		}
	}
}

func (s *Server) rememberQuiz(k quizKey, qs []catalog.QuizQuestion) {
	s.quizMu.Lock()
	defer s.quizMu.Unlock()
	s.quizzes[k] = qs
}

func (s *Server) servedQuiz(k quizKey) ([]catalog.QuizQuestion, bool) {
	s.quizMu.Lock()
	defer s.quizMu.Unlock()
	qs, ok := s.quizzes[k]
	return qs, ok
}

func (s *Server) forgetQuiz(k quizKey) {
	s.quizMu.Lock()
	defer s.quizMu.Unlock()
	delete(s.quizzes, k)
}
