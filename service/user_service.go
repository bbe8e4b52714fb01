// api/service/user_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/dao"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// IUserService defines the interface for user operations
type IUserService interface {
	CreateUser(ctx context.Context, p *auth.Principal, user model.User, password string) (*model.User, error)
	GetUser(ctx context.Context, p *auth.Principal, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, p *auth.Principal, user model.User) (*model.User, error)
	DeleteUser(ctx context.Context, p *auth.Principal, userID string) error
	ListUsers(ctx context.Context, p *auth.Principal, criteria model.UserSearchCriteria) ([]*model.User, model.Pagination, error)
}

// UserService handles business logic for user operations
type UserService struct {
	userDAO         *dao.UserDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IUserService = &UserService{}

func NewUserService(userDAO *dao.UserDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus) *UserService {
	return &UserService{
		userDAO:         userDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

// CreateUser provisions an account. Non-super-admin callers can only create
// accounts inside their own organization, with operational roles.
func (s *UserService) CreateUser(ctx context.Context, p *auth.Principal, user model.User, password string) (*model.User, error) {
	if !p.IsSuperAdmin() {
		user.OrganizationID = p.OrganizationID
		if user.Role == model.RoleSuperAdmin || user.Role == model.RoleCEO {
			return nil, app_errors.ErrInsufficientRole
		}
	}
	if user.Status == "" {
		user.Status = model.StatusActive
	}
	if err := s.validationUtil.ValidateUser(user); err != nil {
		logger.Warn("Rejected invalid user payload", zap.Error(err))
		return nil, app_errors.ErrInvalidUserData
	}
	if err := s.validationUtil.ValidatePassword(password); err != nil {
		return nil, app_errors.ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	userID, err := s.userDAO.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetUser(ctx, *created); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.String("userID", created.ID))
	}
	s.eventBus.Publish(ctx, util.EventUserCreated, *created)

	return created, nil
}

// GetUser reads one account. A user may always read themselves; anyone else
// must be in the same organization.
func (s *UserService) GetUser(ctx context.Context, p *auth.Principal, userID string) (*model.User, error) {
	if cached, err := s.cacheService.GetUser(ctx, userID); err == nil && cached != nil {
		if err := s.authorizeRead(p, cached); err != nil {
			return nil, err
		}
		return cached, nil
	}

	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(p, user); err != nil {
		return nil, err
	}

	if err := s.cacheService.SetUser(ctx, *user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.String("userID", user.ID))
	}
	return user, nil
}

func (s *UserService) authorizeRead(p *auth.Principal, user *model.User) error {
	if p.ID == user.ID {
		return nil
	}
	if err := auth.CheckSameOrganization(p, user.OrganizationID); err != nil {
		return app_errors.ErrAccessDenied
	}
	return nil
}

// UpdateUser modifies an account inside the caller's organization. Promoting
// anyone to an administrative role stays reserved for super admins.
func (s *UserService) UpdateUser(ctx context.Context, p *auth.Principal, user model.User) (*model.User, error) {
	existing, err := s.userDAO.GetUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckSameOrganization(p, existing.OrganizationID); err != nil {
		return nil, app_errors.ErrAccessDenied
	}
	if !p.IsSuperAdmin() {
		user.OrganizationID = existing.OrganizationID
		if user.Role != existing.Role &&
			(user.Role == model.RoleSuperAdmin || user.Role == model.RoleCEO) {
			return nil, app_errors.ErrInsufficientRole
		}
	}
	// Password updates go through the dedicated change-password flow.
	user.Password = existing.Password

	if err := s.validationUtil.ValidateUser(user); err != nil {
		return nil, app_errors.ErrInvalidUserData
	}

	updated, err := s.userDAO.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.DeleteUser(ctx, updated.ID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("userID", updated.ID))
	}
	s.eventBus.Publish(ctx, util.EventUserUpdated, *updated)

	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, p *auth.Principal, userID string) error {
	existing, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.CheckSameOrganization(p, existing.OrganizationID); err != nil {
		return app_errors.ErrAccessDenied
	}

	if err := s.userDAO.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if err := s.cacheService.DeleteUser(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("userID", userID))
	}
	s.eventBus.Publish(ctx, util.EventUserDeleted, *existing)

	return nil
}

// ListUsers returns a page of accounts. Non-super-admin callers are silently
// narrowed to their own organization regardless of the requested filter, and
// callers without one are rejected outright: an empty organization filter
// would widen the listing to the whole directory.
func (s *UserService) ListUsers(ctx context.Context, p *auth.Principal, criteria model.UserSearchCriteria) ([]*model.User, model.Pagination, error) {
	if err := auth.CheckOrganization(p); err != nil {
		return nil, model.Pagination{}, err
	}
	if !p.IsSuperAdmin() {
		criteria.OrganizationID = p.OrganizationID
	}

	users, total, err := s.userDAO.ListUsers(ctx, criteria)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	limit := criteria.Limit
	if limit < 1 {
		limit = 10
	}
	return users, model.NewPagination(page, limit, total), nil
}
