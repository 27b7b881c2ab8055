// Package authn provides the profile-based authenticator. The signed-in
// user comes from configuration (or the LEXI_USER environment variable);
// there is no session or token exchange at this layer.
package authn

import (
	"context"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
)

// ProfileAuthenticator yields the opaque user identity configured in the
// profile section. An empty identity means no user is signed in.
type ProfileAuthenticator struct {
	userID string
}

// NewProfileAuthenticator creates an authenticator from the profile config.
func NewProfileAuthenticator(cfg config.ProfileConfig) *ProfileAuthenticator {
	return &ProfileAuthenticator{userID: cfg.UserID}
}

// CurrentUser returns the configured identity, or an unauthorized error
// when none is configured.
func (a *ProfileAuthenticator) CurrentUser(_ context.Context) (string, error) {
	if a.userID == "" {
		return "", entities.NewUnauthorized("no signed-in user (set profile.user_id in config or the LEXI_USER env var)")
	}
	return a.userID, nil
}
