package ports

import "context"

// Authenticator resolves the opaque identity of the calling user. It is a
// capability check: implementations return an unauthorized domain error when
// no user is signed in, and callers treat that as an ordinary error variant.
type Authenticator interface {
	// CurrentUser returns the stable identity of the authenticated user.
	CurrentUser(ctx context.Context) (string, error)
}
