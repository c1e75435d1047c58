package contexts

import (
	"context"

	"github.com/estately/estately/internal/model"
)

// ContextKey defines the context key type.
type ContextKey string

const (
	// containerContextKey is used to store the context container in the context.
	containerContextKey ContextKey = "context_container"
)

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	container := getContainer(ctx)
	container.User = user

	return withContainer(ctx, container)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*model.User, bool) {
	container := getContainer(ctx)
	return container.User, container.User != nil
}

// MustGetUser retrieves the authenticated user, panicking when absent. Only
// for handlers behind the auth middleware.
func MustGetUser(ctx context.Context) *model.User {
	user, ok := GetUser(ctx)
	if !ok {
		panic("contexts: no user in context")
	}

	return user
}
