package biz

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/model"
)

type FavoriteServiceParams struct {
	fx.In

	DB     *gorm.DB
	Policy *authz.Policy
}

type FavoriteService struct {
	*AbstractService

	policy *authz.Policy
}

func NewFavoriteService(params FavoriteServiceParams) *FavoriteService {
	return &FavoriteService{
		AbstractService: &AbstractService{db: params.DB},
		policy:          params.Policy,
	}
}

// List returns the actor's favorites with their properties.
func (s *FavoriteService) List(ctx context.Context, actor authz.Actor) ([]model.Favorite, error) {
	var favorites []model.Favorite

	err := s.dbFromContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}

// Add favorites a property for the actor. Adding an already-favorited
// property returns the existing row; duplicates are success, not errors.
// The created flag tells the handler whether to answer 201 or 200.
func (s *FavoriteService) Add(ctx context.Context, actor authz.Actor, propertyID uint) (*model.Favorite, bool, error) {
	var property model.Property

	err := s.dbFromContext(ctx).First(&property, propertyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, notFoundError("property not found")
		}

		return nil, false, fmt.Errorf("failed to get property: %w", err)
	}

	var existing model.Favorite

	err = s.dbFromContext(ctx).
		Where("user_id = ? AND property_id = ?", actor.ID, propertyID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to get favorite: %w", err)
	}

	favorite := &model.Favorite{UserID: actor.ID, PropertyID: propertyID}

	err = s.dbFromContext(ctx).Create(favorite).Error
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent add of the same pair; fetch the
			// winner and stay idempotent.
			err = s.dbFromContext(ctx).
				Where("user_id = ? AND property_id = ?", actor.ID, propertyID).
				First(&existing).Error
			if err != nil {
				return nil, false, fmt.Errorf("failed to get favorite: %w", err)
			}

			return &existing, false, nil
		}

		return nil, false, fmt.Errorf("failed to create favorite: %w", err)
	}

	log.Debug(ctx, "favorite added", log.Uint("user_id", actor.ID), log.Uint("property_id", propertyID))

	return favorite, true, nil
}

// Remove unfavorites a property. A missing pair is not-found, never a
// silent success.
func (s *FavoriteService) Remove(ctx context.Context, actor authz.Actor, propertyID uint) error {
	result := s.dbFromContext(ctx).
		Where("user_id = ? AND property_id = ?", actor.ID, propertyID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return notFoundError("favorite not found")
	}

	return nil
}
