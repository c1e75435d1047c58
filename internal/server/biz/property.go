package biz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/model"
	"github.com/estately/estately/internal/storage"
)

type PropertyServiceParams struct {
	fx.In

	DB     *gorm.DB
	Policy *authz.Policy
	Images *storage.ImageStore
}

type PropertyService struct {
	*AbstractService

	policy *authz.Policy
	images *storage.ImageStore
}

func NewPropertyService(params PropertyServiceParams) *PropertyService {
	return &PropertyService{
		AbstractService: &AbstractService{db: params.DB},
		policy:          params.Policy,
		images:          params.Images,
	}
}

type CreatePropertyInput struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Location     string        `json:"location"`
	Bedrooms     uint          `json:"bedrooms"`
	Bathrooms    uint          `json:"bathrooms"`
	Space        uint          `json:"space"`
	PropertyType string        `json:"property_type"`
	Purpose      model.Purpose `json:"purpose"`
}

func (in *CreatePropertyInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return invalidInputError("title is required")
	case strings.TrimSpace(in.Description) == "":
		return invalidInputError("description is required")
	case strings.TrimSpace(in.Location) == "":
		return invalidInputError("location is required")
	case in.Price < 0:
		return invalidInputError("price must not be negative")
	}

	if in.Purpose == "" {
		in.Purpose = model.PurposeSale
	}

	if !in.Purpose.Valid() {
		return invalidInputError(fmt.Sprintf("invalid purpose: %q", in.Purpose))
	}

	return nil
}

// ImageUpload is one image payload attached to a property create request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// Create stores the listing with its images. Blobs are uploaded first, in
// sequence; the property and image rows are then written in one
// transaction, so a failed upload never leaves a partial listing in the
// database. Already-uploaded blobs are removed best effort on failure.
func (s *PropertyService) Create(ctx context.Context, actor authz.Actor, input CreatePropertyInput, images []ImageUpload) (*model.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))

	for _, img := range images {
		url, err := s.images.Save(ctx, img.Filename, img.Content)
		if err != nil {
			s.removeBlobs(ctx, urls)
			return nil, fmt.Errorf("failed to upload image %q: %w", img.Filename, err)
		}

		urls = append(urls, url)
	}

	property := &model.Property{
		OwnerID:      actor.ID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Location:     input.Location,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Space:        input.Space,
		PropertyType: input.PropertyType,
		Purpose:      input.Purpose,
		Status:       model.PropertyPending,
		IsPublished:  false,
	}
	for _, url := range urls {
		property.Images = append(property.Images, model.PropertyImage{URL: url})
	}

	err := s.dbFromContext(ctx).Create(property).Error
	if err != nil {
		s.removeBlobs(ctx, urls)

		if isUniqueViolation(err) {
			return nil, conflictError("a property with this title already exists")
		}

		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	log.Info(ctx, "property created",
		log.Uint("owner_id", actor.ID),
		log.Uint("property_id", property.ID),
		log.Int("images", len(urls)),
	)

	return property, nil
}

// ListFilter narrows the public property list.
type ListFilter struct {
	Location     string
	Bedrooms     *uint
	Bathrooms    *uint
	PropertyType string
	Purpose      string
	IsPublished  *bool
	Search       string
}

// List returns listings newest first, optionally filtered.
func (s *PropertyService) List(ctx context.Context, filter ListFilter) ([]model.Property, error) {
	query := s.dbFromContext(ctx).Preload("Images").Order("created_at DESC")

	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	if filter.Bedrooms != nil {
		query = query.Where("bedrooms = ?", *filter.Bedrooms)
	}

	if filter.Bathrooms != nil {
		query = query.Where("bathrooms = ?", *filter.Bathrooms)
	}

	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}

	if filter.Purpose != "" {
		query = query.Where("purpose = ?", filter.Purpose)
	}

	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}

	var properties []model.Property

	err := query.Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return properties, nil
}

// Mine returns the actor's own listings, any status.
func (s *PropertyService) Mine(ctx context.Context, actor authz.Actor) ([]model.Property, error) {
	var properties []model.Property

	err := s.dbFromContext(ctx).
		Preload("Images").
		Where("owner_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return properties, nil
}

// Get returns one listing. Unapproved or unpublished listings answer with
// not-found to callers who may not see them, so their existence never
// leaks.
func (s *PropertyService) Get(ctx context.Context, actor *authz.Actor, id uint) (*model.Property, error) {
	property, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	approved := property.Status == model.PropertyApproved

	decision := s.policy.CanViewProperty(actor, property.OwnerID, approved, property.IsPublished)
	if !decision.Allowed {
		return nil, notFoundError("property not found")
	}

	return property, nil
}

type UpdatePropertyInput struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Price        *float64       `json:"price"`
	Location     *string        `json:"location"`
	Bedrooms     *uint          `json:"bedrooms"`
	Bathrooms    *uint          `json:"bathrooms"`
	Space        *uint          `json:"space"`
	PropertyType *string        `json:"property_type"`
	Purpose      *model.Purpose `json:"purpose"`
}

// Update edits a listing. Owner edits reset the moderation status to
// Pending; admin edits keep it.
func (s *PropertyService) Update(ctx context.Context, actor authz.Actor, id uint, input UpdatePropertyInput) (*model.Property, error) {
	property, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision := s.policy.CanModifyProperty(actor, property.OwnerID); !decision.Allowed {
		return nil, deniedError(decision.Reason)
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, invalidInputError("price must not be negative")
	}

	if input.Purpose != nil && !input.Purpose.Valid() {
		return nil, invalidInputError(fmt.Sprintf("invalid purpose: %q", *input.Purpose))
	}

	updates := map[string]any{}

	if input.Title != nil {
		updates["title"] = *input.Title
	}

	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if input.Price != nil {
		updates["price"] = *input.Price
	}

	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}

	if input.Bathrooms != nil {
		updates["bathrooms"] = *input.Bathrooms
	}

	if input.Space != nil {
		updates["space"] = *input.Space
	}

	if input.PropertyType != nil {
		updates["property_type"] = *input.PropertyType
	}

	if input.Purpose != nil {
		updates["purpose"] = *input.Purpose
	}

	if len(updates) == 0 {
		return property, nil
	}

	// Owner edits go back through moderation.
	if !actor.Role.IsAdmin() {
		updates["status"] = model.PropertyPending
	}

	err = s.dbFromContext(ctx).Model(&model.Property{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError("a property with this title already exists")
		}

		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return s.getByID(ctx, id)
}

// Delete removes a listing with its images, favorites and inquiries. Blob
// removal happens after the transaction and is best effort.
func (s *PropertyService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	property, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if decision := s.policy.CanModifyProperty(actor, property.OwnerID); !decision.Allowed {
		return deniedError(decision.Reason)
	}

	err = s.RunInTransaction(ctx, func(tx *gorm.DB) error {
		for _, m := range []any{&model.PropertyImage{}, &model.Favorite{}, &model.Inquiry{}} {
			if err := tx.Where("property_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete property dependents: %w", err)
			}
		}

		if err := tx.Delete(&model.Property{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete property: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(property.Images))
	for _, img := range property.Images {
		urls = append(urls, img.URL)
	}

	s.removeBlobs(ctx, urls)

	log.Info(ctx, "property deleted", log.Uint("actor_id", actor.ID), log.Uint("property_id", id))

	return nil
}

// Review moves a pending listing to Approved or Rejected; admin and
// superadmin only.
func (s *PropertyService) Review(ctx context.Context, actor authz.Actor, id uint, approve bool) (*model.Property, error) {
	if decision := s.policy.CanReviewProperty(actor); !decision.Allowed {
		return nil, deniedError(decision.Reason)
	}

	property, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.Status != model.PropertyPending {
		return nil, conflictError("property already reviewed")
	}

	status := model.PropertyRejected
	if approve {
		status = model.PropertyApproved
	}

	err = s.dbFromContext(ctx).Model(&model.Property{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update property status: %w", err)
	}

	property.Status = status

	log.Info(ctx, "property reviewed",
		log.Uint("actor_id", actor.ID),
		log.Uint("property_id", id),
		log.String("status", string(status)),
	)

	return property, nil
}

// SetPublished toggles the published flag. Publishing requires an approved
// listing; unpublishing is always allowed to whoever may modify it.
func (s *PropertyService) SetPublished(ctx context.Context, actor authz.Actor, id uint, published bool) (*model.Property, error) {
	property, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision := s.policy.CanPublishProperty(actor, property.OwnerID); !decision.Allowed {
		return nil, deniedError(decision.Reason)
	}

	if published && property.Status != model.PropertyApproved {
		return nil, conflictError("property is not approved")
	}

	err = s.dbFromContext(ctx).Model(&model.Property{}).Where("id = ?", id).Update("is_published", published).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	property.IsPublished = published

	return property, nil
}

func (s *PropertyService) getByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property

	err := s.dbFromContext(ctx).Preload("Images").First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("property not found")
		}

		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &property, nil
}

func (s *PropertyService) removeBlobs(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.images.Remove(ctx, url); err != nil {
			log.Warn(ctx, "failed to remove image blob", log.String("url", url), log.Cause(err))
		}
	}
}
