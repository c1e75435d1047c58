package contexts

import (
	"context"

	"github.com/estately/estately/internal/model"
)

// container aggregates everything request-scoped so a single context value
// carries it all.
type container struct {
	User *model.User
}

func getContainer(ctx context.Context) *container {
	if c, ok := ctx.Value(containerContextKey).(*container); ok {
		copied := *c
		return &copied
	}

	return &container{}
}

func withContainer(ctx context.Context, c *container) context.Context {
	return context.WithValue(ctx, containerContextKey, c)
}
