// Package auth decides whether a request is signed in and handles password
// digests.
package auth

import (
	"fmt"

	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/server/session"
)

// Gate is the single source of truth for "who is signed in". It reads and
// writes exactly one session attribute, fixed at construction.
type Gate struct {
	key string
}

// NewGate returns a Gate bound to key. An empty key selects
// common.DefaultAuthSessionKey.
func NewGate(key string) *Gate {
	if key == "" {
		key = common.DefaultAuthSessionKey
	}
	return &Gate{key: key}
}

// SessionKey returns the attribute name holding the signed-in email.
func (g *Gate) SessionKey() string {
	return g.key
}

// Identity returns the signed-in email, if any.
func (g *Gate) Identity(s session.Session) (string, bool) {
	v, ok := s.Get(g.key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// RequireAuthenticated fails with common.ErrAuthenticationRequired when the
// session carries no identity.
func (g *Gate) RequireAuthenticated(s session.Session) error {
	if _, ok := g.Identity(s); !ok {
		return common.ErrAuthenticationRequired
	}
	return nil
}

// RequireAnonymous fails with common.ErrAlreadyAuthenticated when the
// session already carries an identity.
func (g *Gate) RequireAnonymous(s session.Session) error {
	if _, ok := g.Identity(s); ok {
		return common.ErrAlreadyAuthenticated
	}
	return nil
}

// SignIn marks the session as belonging to email. The session identifier is
// renewed first, so an identifier known before sign-in never becomes
// authenticated.
func (g *Gate) SignIn(s session.Session, email string) error {
	if err := s.Renew(); err != nil {
		return fmt.Errorf("session renew: %w", err)
	}
	if err := s.Set(g.key, email); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// SignOut ends the session; RequireAuthenticated fails on it afterwards.
func (g *Gate) SignOut(s session.Session) error {
	if err := s.Invalidate(); err != nil {
		return fmt.Errorf("session invalidate: %w", err)
	}
	return nil
}
