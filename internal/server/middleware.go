package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/auth"
)

const ctxClaimsKey = "claims"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("http request")
	}
}

// originSet is the browser origin allow-list shared by CORS and the
// websocket upgrader. "*" admits every origin.
type originSet struct {
	all bool
	set map[string]bool
}

func newOriginSet(allowed []string) originSet {
	o := originSet{set: make(map[string]bool, len(allowed))}
	for _, a := range allowed {
		a = strings.TrimRight(strings.TrimSpace(a), "/")
		if a == "*" {
			o.all = true
		}
		o.set[a] = true
	}
	return o
}

func (o originSet) allows(origin string) bool {
	return origin != "" && (o.all || o.set[origin])
}

func corsMiddleware(allowed []string) gin.HandlerFunc {
	origins := newOriginSet(allowed)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origins.allows(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// activeClaims validates the request's bearer token and checks that it
// belongs to the session currently held by the store.
func (s *Server) activeClaims(c *gin.Context) (auth.Claims, error) {
	token, ok := bearerTokenFromHeader(c.GetHeader("Authorization"))
	if !ok {
		return auth.Claims{}, auth.ErrTokenInvalid
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return auth.Claims{}, err
	}
	if _, err := s.state.Refresh(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("refresh state")
	}
	sess := s.state.Session()
	if sess == nil || sess.ID != claims.SessionID {
		return auth.Claims{}, errSessionEnded
	}
	return claims, nil
}

var errSessionEnded = errors.New("session ended")

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.activeClaims(c)
		if err != nil {
			msg := "Unauthorized"
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				msg = "Token expired"
			case errors.Is(err, errSessionEnded):
				msg = "Session ended"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}
