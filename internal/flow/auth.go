// Package flow orchestrates the login, registration, and password-reset
// flows over an injected credential store. Outcomes are reported through
// the sentinel errors in internal/store; the HTTP layer maps them to
// user-facing messages.
package flow

import (
	"context"         // Context for store calls
	"crypto/subtle"   // Constant-time hash comparison
	"errors"          // Error matching
	"strings"         // Whitespace trimming

	"nexacare/internal/domain" // Domain models
	"nexacare/internal/store"  // Credential store
)

// Service runs the flows against one explicitly constructed store
type Service struct {
	store *store.Store // Injected credential store
}

// NewService creates a flow service over a store
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Authenticate validates a login attempt and returns the account on success.
// Empty fields are rejected locally, before any store query.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, store.ErrMissingField // Fail fast, no wasted I/O
	}
	account, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrInvalidUsername // Unknown username
		}
		return nil, err // Storage failure surfaces as-is
	}
	// Recompute the digest and compare in constant time
	supplied := store.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(account.PasswordHash)) != 1 {
		return nil, store.ErrInvalidPassword // Wrong password
	}
	return account, nil
}

// Register validates new-account input and delegates creation to the store.
// Returns the created account, whose Username field carries the generated
// username shown to the user.
func (s *Service) Register(ctx context.Context, name, password, confirm string, role domain.Role) (*domain.Account, error) {
	name = strings.TrimSpace(name) // Trim before the empty checks
	if name == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(confirm) == "" {
		return nil, store.ErrMissingField
	}
	if password != confirm {
		return nil, store.ErrPasswordMismatch // Confirmation must match exactly
	}
	return s.store.AddAccount(ctx, name, password, role) // Outcome propagates unchanged
}

// ResetPassword overwrites the stored hash for the given username. No
// ownership challenge is performed before the reset; any caller who knows
// a username can rotate its password. Known limitation carried from the
// original system, recorded in DESIGN.md.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(newPassword) == "" {
		return store.ErrMissingField
	}
	return s.store.UpdatePassword(ctx, username, newPassword)
}
