// Package auth issues and checks the bearer tokens used by the HTTP API.
// A token is bound to one store session; it stops being accepted when
// that session ends, even before it expires.
package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const issuer = "codegenome"

// Claims identifies the session a token was issued for.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Tokens signs and validates HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token service. An empty secret or non-positive ttl
// makes every Issue call fail.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for a session.
func (t *Tokens) Issue(sessionID, userID string) (string, time.Time, error) {
	if len(t.secret) == 0 || t.ttl <= 0 || sessionID == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	c := Claims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses a token and returns its claims.
func (t *Tokens) Validate(token string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(t.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.SessionID == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
