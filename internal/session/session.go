// Package session turns an authenticated user into a signed session token and
// gates protected routes on the role it carries.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"transport_booking/internal/models"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMissingSecret = errors.New("session secret is not configured")
)

// Token is the opaque value handed to the client, normally in a cookie.
type Token string

// Session is a snapshot of the identity at login time. Later changes to the
// user record do not reach an open session.
type Session struct {
	UserID    string
	Role      models.Role
	DriverID  string
	ExpiresAt time.Time
}

type claims struct {
	Role     models.Role `json:"role"`
	DriverID string      `json:"driver_id,omitempty"`
	jwt.RegisteredClaims
}

type Gate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGate(secret []byte, ttl time.Duration) (*Gate, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Open signs a token for user. The user must carry a recognized role.
func (g *Gate) Open(user models.User) (Token, Session, error) {
	if !user.Role.Valid() {
		return "", Session{}, fmt.Errorf("%w: role %q", ErrUnauthorized, user.Role)
	}
	now := g.now()
	sess := Session{
		UserID:    user.UserID,
		Role:      user.Role,
		DriverID:  user.DriverID,
		ExpiresAt: now.Add(g.ttl).Truncate(time.Second),
	}
	c := claims{
		Role:     sess.Role,
		DriverID: sess.DriverID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(g.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Token(signed), sess, nil
}

// Resolve verifies token and returns the session it carries.
func (g *Gate) Resolve(token Token) (Session, error) {
	if token == "" {
		return Session{}, ErrUnauthorized
	}
	var c claims
	parsed, err := jwt.ParseWithClaims(string(token), &c, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !parsed.Valid || c.Subject == "" || !c.Role.Valid() {
		return Session{}, ErrUnauthorized
	}
	return Session{
		UserID:    c.Subject,
		Role:      c.Role,
		DriverID:  c.DriverID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// RequireRole reports whether s was opened for role.
func RequireRole(s Session, role models.Role) bool {
	return s.UserID != "" && s.Role == role
}
