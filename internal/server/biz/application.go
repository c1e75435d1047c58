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

type ApplicationServiceParams struct {
	fx.In

	DB          *gorm.DB
	Policy      *authz.Policy
	UserService *UserService
}

// ApplicationService runs the seller-onboarding workflow: one self-service
// submission per account, reviewed by an admin; approval promotes the
// applicant to seller.
type ApplicationService struct {
	*AbstractService

	policy      *authz.Policy
	userService *UserService
}

func NewApplicationService(params ApplicationServiceParams) *ApplicationService {
	return &ApplicationService{
		AbstractService: &AbstractService{db: params.DB},
		policy:          params.Policy,
		userService:     params.UserService,
	}
}

type SubmitApplicationInput struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	PhoneNumber    string `json:"phone_number"`
	Website        string `json:"website"`
	Message        string `json:"message"`
}

// Submit files the actor's seller application. A second submission fails
// with a conflict whatever the first one's status; this asymmetry with the
// idempotent favorites toggle is deliberate.
func (s *ApplicationService) Submit(ctx context.Context, actor authz.Actor, input SubmitApplicationInput) (*model.SellerApplication, error) {
	existing, err := s.getByUser(ctx, actor.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if decision := s.policy.CanSubmitApplication(actor, existing != nil); !decision.Allowed {
		if existing != nil {
			return nil, conflictError(decision.Reason)
		}

		return nil, deniedError(decision.Reason)
	}

	application := &model.SellerApplication{
		UserID:         actor.ID,
		CompanyName:    input.CompanyName,
		CompanyAddress: input.CompanyAddress,
		PhoneNumber:    input.PhoneNumber,
		Website:        input.Website,
		Status:         model.ApplicationPending,
		Message:        input.Message,
	}

	err = s.dbFromContext(ctx).Create(application).Error
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent submission of the same account.
			return nil, conflictError("already applied")
		}

		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Info(ctx, "seller application submitted", log.Uint("user_id", actor.ID))

	return application, nil
}

// List returns all applications for admins and the actor's own one for
// everyone else.
func (s *ApplicationService) List(ctx context.Context, actor authz.Actor) ([]model.SellerApplication, error) {
	var applications []model.SellerApplication

	query := s.dbFromContext(ctx).Order("created_at DESC")
	if decision := s.policy.CanReviewApplication(actor); !decision.Allowed {
		query = query.Where("user_id = ?", actor.ID)
	}

	err := query.Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}

// Review approves or rejects a pending application. Approval also promotes
// the applicant to seller within the same transaction.
func (s *ApplicationService) Review(ctx context.Context, actor authz.Actor, id uint, approve bool) (*model.SellerApplication, error) {
	if decision := s.policy.CanReviewApplication(actor); !decision.Allowed {
		return nil, deniedError(decision.Reason)
	}

	var application model.SellerApplication

	err := s.dbFromContext(ctx).First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("application not found")
		}

		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if application.Status != model.ApplicationPending {
		return nil, conflictError("application already reviewed")
	}

	status := model.ApplicationRejected
	if approve {
		status = model.ApplicationApproved
	}

	err = s.RunInTransaction(ctx, func(tx *gorm.DB) error {
		err := tx.Model(&model.SellerApplication{}).
			Where("id = ?", application.ID).
			Update("status", status).Error
		if err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}

		if !approve {
			return nil
		}

		applicant, err := s.userService.GetUserByID(ctx, application.UserID)
		if err != nil {
			return err
		}

		return s.userService.promoteToSeller(ctx, tx, applicant)
	})
	if err != nil {
		return nil, err
	}

	application.Status = status

	log.Info(ctx, "seller application reviewed",
		log.Uint("actor_id", actor.ID),
		log.Uint("application_id", application.ID),
		log.String("status", string(status)),
	)

	return &application, nil
}

func (s *ApplicationService) getByUser(ctx context.Context, userID uint) (*model.SellerApplication, error) {
	var application model.SellerApplication

	err := s.dbFromContext(ctx).Where("user_id = ?", userID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("application not found")
		}

		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &application, nil
}
