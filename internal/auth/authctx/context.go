// Package authctx propagates the authenticated user through the request
// context. The identity middleware stores the user; downstream handlers
// read it back with User or MustUser.
package authctx

import (
	"context"

	"github.com/skillsenselab/equiphub/internal/model"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var userKey = contextKey{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// User retrieves the authenticated user from the context.
func User(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

// MustUser retrieves the authenticated user or panics. Use only in
// handlers behind the identity middleware, which guarantees presence.
func MustUser(ctx context.Context) *model.User {
	user, ok := User(ctx)
	if !ok {
		panic("authctx: no authenticated user in context")
	}
	return user
}
