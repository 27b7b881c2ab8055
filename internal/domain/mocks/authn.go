package mocks

import (
	"context"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

// Authenticator is a mock implementation of ports.Authenticator. An empty
// UserID simulates a signed-out caller.
type Authenticator struct {
	UserID string
	Err    error
}

// NewAuthenticator creates a mock Authenticator for the given user.
func NewAuthenticator(userID string) *Authenticator {
	return &Authenticator{UserID: userID}
}

// CurrentUser returns the configured identity, or an unauthorized error
// when none is set.
func (m *Authenticator) CurrentUser(_ context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.UserID == "" {
		return "", entities.NewUnauthorized("no authenticated user")
	}
	return m.UserID, nil
}
