package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/model"
	"github.com/estately/estately/internal/objects"
)

type UserServiceParams struct {
	fx.In

	DB     *gorm.DB
	Policy *authz.Policy
}

type UserService struct {
	*AbstractService

	policy    *authz.Policy
	userCache *gocache.Cache
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		AbstractService: &AbstractService{db: params.DB},
		policy:          params.Policy,
		userCache:       gocache.New(5*time.Minute, 10*time.Minute),
	}
}

type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateUser registers a new account with the policy's default role. The
// request can never choose a role; only the role-change operation moves an
// account away from the default.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalidInputError("a valid email is required")
	}

	if len(input.Password) < 6 {
		return nil, invalidInputError("password must be at least 6 characters")
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      s.policy.DefaultRole(),
		IsActive:  true,
	}

	err = s.dbFromContext(ctx).Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError("email already registered")
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info(ctx, "user registered", log.Uint("user_id", user.ID), log.String("role", user.Role.String()))

	return user, nil
}

// ListUsers returns every account; admin and superadmin only.
func (s *UserService) ListUsers(ctx context.Context, actor authz.Actor) ([]model.User, error) {
	if decision := s.policy.CanListAccounts(actor); !decision.Allowed {
		return nil, deniedError(decision.Reason)
	}

	var users []model.User

	err := s.dbFromContext(ctx).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUserByID loads an account, serving repeated lookups from the cache.
// The auth middleware hits this on every authenticated request.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	key := userCacheKey(id)
	if cached, ok := s.userCache.Get(key); ok {
		if user, ok := cached.(*model.User); ok {
			return user, nil
		}
	}

	var user model.User

	err := s.dbFromContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("user not found")
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.userCache.Set(key, &user, gocache.DefaultExpiration)

	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.dbFromContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("user not found")
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ChangeRole moves an account to a new role. The policy owns every rule:
// only a superadmin actor may change roles, and a superadmin target is
// locked for everyone. Only the role column is persisted.
func (s *UserService) ChangeRole(ctx context.Context, actor authz.Actor, targetID uint, requestedRole string) (authz.Role, error) {
	// The actor gate runs before the target lookup: a denied actor gets the
	// same answer whether or not the target exists.
	if decision := s.policy.CanAdministerRoles(actor); !decision.Allowed {
		return "", deniedError(decision.Reason)
	}

	target, err := s.GetUserByID(ctx, targetID)
	if err != nil {
		return "", err
	}

	if decision := s.policy.CanChangeRole(actor, target.Actor()); !decision.Allowed {
		return "", deniedError(decision.Reason)
	}

	newRole, err := authz.ParseAssignableRole(requestedRole)
	if err != nil {
		return "", invalidInputError(err.Error())
	}

	err = s.dbFromContext(ctx).
		Model(&model.User{}).
		Where("id = ?", targetID).
		Update("role", newRole).Error
	if err != nil {
		return "", fmt.Errorf("failed to update role: %w", err)
	}

	s.invalidateUserCache(ctx, targetID)

	log.Info(ctx, "user role changed",
		log.Uint("actor_id", actor.ID),
		log.Uint("user_id", targetID),
		log.String("role", newRole.String()),
	)

	return newRole, nil
}

// promoteToSeller is the seller-application approval effect. Superadmin
// accounts keep their role.
func (s *UserService) promoteToSeller(ctx context.Context, tx *gorm.DB, user *model.User) error {
	if user.Actor().Role == authz.RoleSuperAdmin || user.IsSuperuser {
		return nil
	}

	err := tx.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("role", authz.RoleSeller).Error
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}

	s.invalidateUserCache(ctx, user.ID)

	return nil
}

func (s *UserService) invalidateUserCache(ctx context.Context, id uint) {
	s.userCache.Delete(userCacheKey(id))
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// ConvertUserToUserInfo reduces an account to its public representation.
func ConvertUserToUserInfo(user *model.User) *objects.UserInfo {
	return &objects.UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role.String(),
		IsActive:   user.IsActive,
		DateJoined: user.CreatedAt,
	}
}

// isUniqueViolation matches unique-constraint failures across the sqlite
// and postgres drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
