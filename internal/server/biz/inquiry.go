package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/model"
)

type InquiryServiceParams struct {
	fx.In

	DB     *gorm.DB
	Policy *authz.Policy
}

type InquiryService struct {
	*AbstractService

	policy *authz.Policy
}

func NewInquiryService(params InquiryServiceParams) *InquiryService {
	return &InquiryService{
		AbstractService: &AbstractService{db: params.DB},
		policy:          params.Policy,
	}
}

type CreateInquiryInput struct {
	PropertyID    uint   `json:"property_id"`
	Message       string `json:"message"`
	ContactNumber string `json:"contact_number"`
}

// Create files an inquiry about a property. Inquiries are immutable once
// created.
func (s *InquiryService) Create(ctx context.Context, actor authz.Actor, input CreateInquiryInput) (*model.Inquiry, error) {
	switch {
	case strings.TrimSpace(input.Message) == "":
		return nil, invalidInputError("message is required")
	case strings.TrimSpace(input.ContactNumber) == "":
		return nil, invalidInputError("contact number is required")
	}

	var property model.Property

	err := s.dbFromContext(ctx).First(&property, input.PropertyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("property not found")
		}

		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	inquiry := &model.Inquiry{
		UserID:        actor.ID,
		PropertyID:    input.PropertyID,
		Message:       input.Message,
		ContactNumber: input.ContactNumber,
	}

	err = s.dbFromContext(ctx).Create(inquiry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	log.Debug(ctx, "inquiry created", log.Uint("user_id", actor.ID), log.Uint("property_id", input.PropertyID))

	return inquiry, nil
}

// List returns the inquiries the actor may observe. The visibility scope is
// a policy decision: admins see all, sellers the inquiries on their own
// properties, buyers their own requests. An unknown role is forbidden,
// which is distinct from an empty-but-authorized result.
func (s *InquiryService) List(ctx context.Context, actor authz.Actor) ([]model.Inquiry, error) {
	query := s.dbFromContext(ctx).Model(&model.Inquiry{}).Order("inquiries.created_at DESC")

	switch s.policy.InquiryVisibility(actor) {
	case authz.InquiryScopeAll:
	case authz.InquiryScopeOwnedProperties:
		query = query.
			Joins("JOIN properties ON properties.id = inquiries.property_id").
			Where("properties.owner_id = ?", actor.ID)
	case authz.InquiryScopeRequested:
		query = query.Where("inquiries.user_id = ?", actor.ID)
	default:
		return nil, deniedError("unauthorized")
	}

	var inquiries []model.Inquiry

	err := query.Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	return inquiries, nil
}
