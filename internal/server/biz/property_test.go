package biz

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/model"
)

func TestCreateProperty(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)

	t.Run("creates pending and unpublished with images", func(t *testing.T) {
		property, err := ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{
			Title:       "Lakeside Villa",
			Description: "three bedrooms by the lake",
			Price:       250000,
			Location:    "Dhaka",
			Bedrooms:    3,
			Bathrooms:   2,
			Space:       1800,
		}, []ImageUpload{
			{Filename: "front.jpg", Content: strings.NewReader("img-1")},
			{Filename: "back.png", Content: strings.NewReader("img-2")},
		})
		require.NoError(t, err)
		require.Equal(t, model.PropertyPending, property.Status)
		require.False(t, property.IsPublished)
		require.Equal(t, model.PurposeSale, property.Purpose)
		require.Len(t, property.Images, 2)

		var count int64
		require.NoError(t, ts.client.Model(&model.PropertyImage{}).Where("property_id = ?", property.ID).Count(&count).Error)
		require.EqualValues(t, 2, count)
	})

	t.Run("duplicate title conflicts", func(t *testing.T) {
		_, err := ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{
			Title:       "Lakeside Villa",
			Description: "copy",
			Price:       1,
			Location:    "Dhaka",
		}, nil)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("validates required fields", func(t *testing.T) {
		_, err := ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{}, nil)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{
			Title:       "Negative",
			Description: "d",
			Location:    "l",
			Price:       -1,
		}, nil)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{
			Title:       "Bad purpose",
			Description: "d",
			Location:    "l",
			Purpose:     model.Purpose("For Fun"),
		}, nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPropertyVisibility(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	admin := ts.createUser(t, "admin@example.com", authz.RoleAdmin)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)

	property := ts.createProperty(t, seller, "Hidden Flat")

	t.Run("pending listing hides from strangers as not found", func(t *testing.T) {
		_, err := ts.properties.Get(ctx, nil, property.ID)
		require.ErrorIs(t, err, ErrNotFound)

		actor := buyer.Actor()
		_, err = ts.properties.Get(ctx, &actor, property.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner and admin see it", func(t *testing.T) {
		owner := seller.Actor()
		got, err := ts.properties.Get(ctx, &owner, property.ID)
		require.NoError(t, err)
		require.Equal(t, property.ID, got.ID)

		adm := admin.Actor()
		_, err = ts.properties.Get(ctx, &adm, property.ID)
		require.NoError(t, err)
	})

	t.Run("approved and published listing is public", func(t *testing.T) {
		_, err := ts.properties.Review(ctx, admin.Actor(), property.ID, true)
		require.NoError(t, err)
		_, err = ts.properties.SetPublished(ctx, seller.Actor(), property.ID, true)
		require.NoError(t, err)

		got, err := ts.properties.Get(ctx, nil, property.ID)
		require.NoError(t, err)
		require.True(t, got.IsPublished)
	})

	t.Run("absent listing is not found", func(t *testing.T) {
		_, err := ts.properties.Get(ctx, nil, 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateProperty(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	admin := ts.createUser(t, "admin@example.com", authz.RoleAdmin)
	stranger := ts.createUser(t, "stranger@example.com", authz.RoleSeller)

	property := ts.createProperty(t, seller, "Edit Me")
	_, err := ts.properties.Review(ctx, admin.Actor(), property.ID, true)
	require.NoError(t, err)

	t.Run("stranger is denied", func(t *testing.T) {
		price := 1.0
		_, err := ts.properties.Update(ctx, stranger.Actor(), property.ID, UpdatePropertyInput{Price: &price})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner edit resets moderation status", func(t *testing.T) {
		price := 90000.0
		updated, err := ts.properties.Update(ctx, seller.Actor(), property.ID, UpdatePropertyInput{Price: &price})
		require.NoError(t, err)
		require.Equal(t, 90000.0, updated.Price)
		require.Equal(t, model.PropertyPending, updated.Status)
	})

	t.Run("admin edit keeps moderation status", func(t *testing.T) {
		_, err := ts.properties.Review(ctx, admin.Actor(), property.ID, true)
		require.NoError(t, err)

		location := "Chattogram"
		updated, err := ts.properties.Update(ctx, admin.Actor(), property.ID, UpdatePropertyInput{Location: &location})
		require.NoError(t, err)
		require.Equal(t, model.PropertyApproved, updated.Status)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		price := -5.0
		_, err := ts.properties.Update(ctx, seller.Actor(), property.ID, UpdatePropertyInput{Price: &price})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPropertyReviewAndPublish(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	admin := ts.createUser(t, "admin@example.com", authz.RoleAdmin)

	property := ts.createProperty(t, seller, "Review Me")

	t.Run("publishing an unapproved listing conflicts", func(t *testing.T) {
		_, err := ts.properties.SetPublished(ctx, seller.Actor(), property.ID, true)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("seller may not review", func(t *testing.T) {
		_, err := ts.properties.Review(ctx, seller.Actor(), property.ID, true)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin approves then seller publishes", func(t *testing.T) {
		reviewed, err := ts.properties.Review(ctx, admin.Actor(), property.ID, true)
		require.NoError(t, err)
		require.Equal(t, model.PropertyApproved, reviewed.Status)

		published, err := ts.properties.SetPublished(ctx, seller.Actor(), property.ID, true)
		require.NoError(t, err)
		require.True(t, published.IsPublished)
	})

	t.Run("reviewing twice conflicts", func(t *testing.T) {
		_, err := ts.properties.Review(ctx, admin.Actor(), property.ID, false)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejection works on a fresh listing", func(t *testing.T) {
		other := ts.createProperty(t, seller, "Reject Me")

		reviewed, err := ts.properties.Review(ctx, admin.Actor(), other.ID, false)
		require.NoError(t, err)
		require.Equal(t, model.PropertyRejected, reviewed.Status)
	})
}

func TestDeleteProperty(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	buyer := ts.createUser(t, "buyer@example.com", authz.RoleBuyer)

	property, err := ts.properties.Create(ctx, seller.Actor(), CreatePropertyInput{
		Title:       "Delete Me",
		Description: "d",
		Price:       1,
		Location:    "l",
	}, []ImageUpload{{Filename: "a.jpg", Content: strings.NewReader("x")}})
	require.NoError(t, err)

	_, _, err = ts.favorites.Add(ctx, buyer.Actor(), property.ID)
	require.NoError(t, err)
	_, err = ts.inquiries.Create(ctx, buyer.Actor(), CreateInquiryInput{
		PropertyID:    property.ID,
		Message:       "interested",
		ContactNumber: "0170000000",
	})
	require.NoError(t, err)

	t.Run("non-owner is denied", func(t *testing.T) {
		err := ts.properties.Delete(ctx, buyer.Actor(), property.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner delete cascades", func(t *testing.T) {
		require.NoError(t, ts.properties.Delete(ctx, seller.Actor(), property.ID))

		for _, m := range []any{&model.Property{}, &model.PropertyImage{}, &model.Favorite{}, &model.Inquiry{}} {
			var count int64
			require.NoError(t, ts.client.Model(m).Count(&count).Error)
			require.Zero(t, count)
		}
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		err := ts.properties.Delete(ctx, seller.Actor(), property.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListProperties(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	seller := ts.createUser(t, "seller@example.com", authz.RoleSeller)
	other := ts.createUser(t, "other@example.com", authz.RoleSeller)

	ts.createProperty(t, seller, "Dhaka Flat")
	ts.createProperty(t, other, "Sylhet House")

	t.Run("filter by location", func(t *testing.T) {
		properties, err := ts.properties.List(ctx, ListFilter{Location: "Dhaka"})
		require.NoError(t, err)
		require.Len(t, properties, 2) // both seeded in Dhaka
	})

	t.Run("search matches title", func(t *testing.T) {
		properties, err := ts.properties.List(ctx, ListFilter{Search: "Sylhet"})
		require.NoError(t, err)
		require.Len(t, properties, 1)
		require.Equal(t, "Sylhet House", properties[0].Title)
	})

	t.Run("mine is scoped to the owner", func(t *testing.T) {
		properties, err := ts.properties.Mine(ctx, seller.Actor())
		require.NoError(t, err)
		require.Len(t, properties, 1)
		require.Equal(t, "Dhaka Flat", properties[0].Title)
	})
}
