package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/model"
)

func TestSubmitApplication(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)

	t.Run("first submission is recorded as pending", func(t *testing.T) {
		application, err := ts.applications.Submit(ctx, buyer.Actor(), SubmitApplicationInput{
			CompanyName: "Badhon Properties",
			Message:     "please let me sell",
		})
		require.NoError(t, err)
		require.Equal(t, model.ApplicationPending, application.Status)
		require.Equal(t, buyer.ID, application.UserID)
	})

	t.Run("second submission conflicts", func(t *testing.T) {
		_, err := ts.applications.Submit(ctx, buyer.Actor(), SubmitApplicationInput{})
		require.ErrorIs(t, err, ErrConflict)
		require.Equal(t, "already applied", err.Error())
	})

	t.Run("sellers may not apply", func(t *testing.T) {
		seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)

		_, err := ts.applications.Submit(ctx, seller.Actor(), SubmitApplicationInput{})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestReviewApplication(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	admin := ts.createUser(t, "admin@example.com", authz.RoleAdmin)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)

	application, err := ts.applications.Submit(ctx, buyer.Actor(), SubmitApplicationInput{})
	require.NoError(t, err)

	t.Run("non-admin may not review", func(t *testing.T) {
		_, err := ts.applications.Review(ctx, buyer.Actor(), application.ID, true)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("approval promotes the applicant to seller", func(t *testing.T) {
		reviewed, err := ts.applications.Review(ctx, admin.Actor(), application.ID, true)
		require.NoError(t, err)
		require.Equal(t, model.ApplicationApproved, reviewed.Status)

		var stored model.User
		require.NoError(t, ts.client.First(&stored, buyer.ID).Error)
		require.Equal(t, authz.RoleSeller, stored.Role)
	})

	t.Run("reviewing twice conflicts", func(t *testing.T) {
		_, err := ts.applications.Review(ctx, admin.Actor(), application.ID, false)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("conflict persists even after approval", func(t *testing.T) {
		_, err := ts.applications.Submit(ctx, buyer.Actor(), SubmitApplicationInput{})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejection does not touch the role", func(t *testing.T) {
		other := ts.createUser(t, "other@example.com", authz.RoleBuyer)

		app, err := ts.applications.Submit(ctx, other.Actor(), SubmitApplicationInput{})
		require.NoError(t, err)

		reviewed, err := ts.applications.Review(ctx, admin.Actor(), app.ID, false)
		require.NoError(t, err)
		require.Equal(t, model.ApplicationRejected, reviewed.Status)

		var stored model.User
		require.NoError(t, ts.client.First(&stored, other.ID).Error)
		require.Equal(t, authz.RoleBuyer, stored.Role)
	})

	t.Run("missing application is not found", func(t *testing.T) {
		_, err := ts.applications.Review(ctx, admin.Actor(), 9999, true)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListApplications(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	admin := ts.createUser(t, "admin@example.com", authz.RoleAdmin)
	first := ts.createUser(t, "first@example.com", authz.RoleBuyer)
	second := ts.createUser(t, "second@example.com", authz.RoleBuyer)

	_, err := ts.applications.Submit(ctx, first.Actor(), SubmitApplicationInput{})
	require.NoError(t, err)
	_, err = ts.applications.Submit(ctx, second.Actor(), SubmitApplicationInput{})
	require.NoError(t, err)

	all, err := ts.applications.List(ctx, admin.Actor())
	require.NoError(t, err)
	require.Len(t, all, 2)

	own, err := ts.applications.List(ctx, first.Actor())
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, first.ID, own[0].UserID)
}
