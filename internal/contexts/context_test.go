package contexts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/model"
)

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUser(ctx)
	require.False(t, ok)

	user := &model.User{ID: 7, Email: "seller@example.com", Role: authz.RoleSeller}
	ctx = WithUser(ctx, user)

	got, ok := GetUser(ctx)
	require.True(t, ok)
	require.Equal(t, user, got)
}

func TestContainerIsCopiedOnWrite(t *testing.T) {
	base := WithUser(context.Background(), &model.User{ID: 1})
	derived := WithUser(base, &model.User{ID: 2})

	u, _ := GetUser(base)
	require.Equal(t, uint(1), u.ID)

	u, _ = GetUser(derived)
	require.Equal(t, uint(2), u.ID)
}

func TestMustGetUserPanics(t *testing.T) {
	require.Panics(t, func() {
		MustGetUser(context.Background())
	})
}
