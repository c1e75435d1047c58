package biz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/model"
)

func TestAddFavorite(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)
	property := ts.createProperty(t, seller, "Wishlist Flat")

	t.Run("missing property is not found", func(t *testing.T) {
		_, _, err := ts.favorites.Add(ctx, buyer.Actor(), 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("first add creates", func(t *testing.T) {
		favorite, created, err := ts.favorites.Add(ctx, buyer.Actor(), property.ID)
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, buyer.ID, favorite.UserID)
	})

	t.Run("second add is an idempotent success", func(t *testing.T) {
		favorite, created, err := ts.favorites.Add(ctx, buyer.Actor(), property.ID)
		require.NoError(t, err)
		require.False(t, created)
		require.NotZero(t, favorite.ID)

		var count int64
		require.NoError(t, ts.client.Model(&model.Favorite{}).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
}

func TestRemoveFavorite(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)
	property := ts.createProperty(t, seller, "Wishlist Flat")

	t.Run("removing a nonexistent favorite is not found", func(t *testing.T) {
		err := ts.favorites.Remove(ctx, buyer.Actor(), property.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("removes an existing favorite", func(t *testing.T) {
		_, _, err := ts.favorites.Add(ctx, buyer.Actor(), property.ID)
		require.NoError(t, err)

		require.NoError(t, ts.favorites.Remove(ctx, buyer.Actor(), property.ID))

		err = ts.favorites.Remove(ctx, buyer.Actor(), property.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListFavorites(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)
	other := ts.createUser(t, "other@example.com", authz.RoleBuyer)

	first := ts.createProperty(t, seller, "First")
	second := ts.createProperty(t, seller, "Second")

	_, _, err := ts.favorites.Add(ctx, buyer.Actor(), first.ID)
	require.NoError(t, err)
	_, _, err = ts.favorites.Add(ctx, buyer.Actor(), second.ID)
	require.NoError(t, err)
	_, _, err = ts.favorites.Add(ctx, other.Actor(), first.ID)
	require.NoError(t, err)

	favorites, err := ts.favorites.List(ctx, buyer.Actor())
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	for _, favorite := range favorites {
		require.Equal(t, buyer.ID, favorite.UserID)
		require.NotNil(t, favorite.Property)
		require.NotEmpty(t, favorite.Property.Title)
	}
}

func TestFavoriteCarriesProperty(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)
	property := ts.createProperty(t, seller, "Serialized Flat")

	_, _, err := ts.favorites.Add(ctx, buyer.Actor(), property.ID)
	require.NoError(t, err)

	favorites, err := ts.favorites.List(ctx, buyer.Actor())
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	payload, err := json.Marshal(favorites[0])
	require.NoError(t, err)
	require.Contains(t, string(payload), `"property"`)
	require.Contains(t, string(payload), "Serialized Flat")
}
