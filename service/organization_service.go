// api/service/organization_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// IOrganizationService defines the interface for organization operations
type IOrganizationService interface {
	CreateOrganization(ctx context.Context, p *auth.Principal, org model.Organization) (*model.Organization, error)
	GetOrganization(ctx context.Context, p *auth.Principal, orgID string) (*model.Organization, error)
	GetMyOrganization(ctx context.Context, p *auth.Principal) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, p *auth.Principal, org model.Organization) (*model.Organization, error)
	DeleteOrganization(ctx context.Context, p *auth.Principal, orgID string) error
	ListOrganizations(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Organization, model.Pagination, error)
}

// organizationStore is the slice of the organization DAO the service needs.
type organizationStore interface {
	CreateOrganization(ctx context.Context, org model.Organization) (string, error)
	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	FindByNameOrDomain(ctx context.Context, name, domain string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, org model.Organization) (*model.Organization, error)
	DeleteOrganization(ctx context.Context, orgID string) error
	ListOrganizations(ctx context.Context, page, limit int) ([]*model.Organization, int64, error)
}

// memberDirectory covers the user DAO operations the owner promotion and the
// deletion cascade need.
type memberDirectory interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, user model.User) (*model.User, error)
	UnbindOrganization(ctx context.Context, orgID string) (int64, error)
}

// organizationCache primes and invalidates the cached records organization
// changes touch.
type organizationCache interface {
	SetOrganization(ctx context.Context, org model.Organization) error
	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	DeleteOrganization(ctx context.Context, orgID string) error
	DeleteUser(ctx context.Context, userID string) error
}

type adminNotifier interface {
	NotifyAdmins(ctx context.Context, message string) error
}

// OrganizationService handles business logic for organization operations
type OrganizationService struct {
	orgDAO          organizationStore
	userDAO         memberDirectory
	validationUtil  *util.ValidationUtil
	cacheService    organizationCache
	notificationSvc adminNotifier
	eventBus        *util.EventBus
}

var _ IOrganizationService = &OrganizationService{}

func NewOrganizationService(orgDAO organizationStore, userDAO memberDirectory, validationUtil *util.ValidationUtil, cacheService organizationCache, notificationSvc adminNotifier, eventBus *util.EventBus) *OrganizationService {
	return &OrganizationService{
		orgDAO:          orgDAO,
		userDAO:         userDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

// CreateOrganization provisions a new organization and promotes the creator
// to its owner. Callers already bound to an organization are rejected; super
// admins stay unbound and are not promoted.
func (s *OrganizationService) CreateOrganization(ctx context.Context, p *auth.Principal, org model.Organization) (*model.Organization, error) {
	if !p.IsSuperAdmin() && p.OrganizationID != "" {
		return nil, app_errors.ErrAlreadyInOrganization
	}
	if err := s.validationUtil.ValidateOrganization(org); err != nil {
		logger.Warn("Rejected invalid organization payload", zap.Error(err))
		return nil, app_errors.ErrInvalidOrganizationData
	}

	existing, err := s.orgDAO.FindByNameOrDomain(ctx, org.Name, org.Domain)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, app_errors.ErrOrganizationConflict
	}

	org.AdminUserID = p.ID
	org.IsActive = true

	orgID, err := s.orgDAO.CreateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}

	if !p.IsSuperAdmin() {
		if err := s.promoteCreator(ctx, p.ID, orgID); err != nil {
			// The organization exists but its owner is not bound. Surface the
			// failure instead of leaving the caller guessing.
			logger.Error("Failed to promote organization creator",
				zap.Error(err),
				zap.String("userID", p.ID),
				zap.String("organizationID", orgID))
			return nil, err
		}
	}

	created, err := s.orgDAO.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetOrganization(ctx, *created); err != nil {
		logger.Warn("Failed to cache organization", zap.Error(err), zap.String("organizationID", created.ID))
	}
	s.eventBus.Publish(ctx, util.EventOrganizationCreated, *created)

	return created, nil
}

func (s *OrganizationService) promoteCreator(ctx context.Context, userID, orgID string) error {
	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.Role = model.RoleCEO
	user.OrganizationID = orgID
	if _, err := s.userDAO.UpdateUser(ctx, *user); err != nil {
		return err
	}
	return s.cacheService.DeleteUser(ctx, userID)
}

// GetOrganization reads one organization. Members see their own; everything
// else requires the override role.
func (s *OrganizationService) GetOrganization(ctx context.Context, p *auth.Principal, orgID string) (*model.Organization, error) {
	if err := auth.CheckSameOrganization(p, orgID); err != nil {
		return nil, app_errors.ErrAccessDenied
	}

	if cached, err := s.cacheService.GetOrganization(ctx, orgID); err == nil && cached != nil {
		return cached, nil
	}

	org, err := s.orgDAO.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetOrganization(ctx, *org); err != nil {
		logger.Warn("Failed to cache organization", zap.Error(err), zap.String("organizationID", org.ID))
	}
	return org, nil
}

func (s *OrganizationService) GetMyOrganization(ctx context.Context, p *auth.Principal) (*model.Organization, error) {
	if p.OrganizationID == "" {
		return nil, app_errors.ErrNoOrganization
	}
	return s.GetOrganization(ctx, p, p.OrganizationID)
}

// UpdateOrganization modifies the caller's own organization.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, p *auth.Principal, org model.Organization) (*model.Organization, error) {
	if err := auth.CheckSameOrganization(p, org.ID); err != nil {
		return nil, app_errors.ErrAccessDenied
	}

	existing, err := s.orgDAO.GetOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	// The owner binding never changes through updates.
	org.AdminUserID = existing.AdminUserID

	if err := s.validationUtil.ValidateOrganization(org); err != nil {
		return nil, app_errors.ErrInvalidOrganizationData
	}

	updated, err := s.orgDAO.UpdateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.DeleteOrganization(ctx, updated.ID); err != nil {
		logger.Warn("Failed to invalidate organization cache", zap.Error(err), zap.String("organizationID", updated.ID))
	}
	s.eventBus.Publish(ctx, util.EventOrganizationUpdated, *updated)

	return updated, nil
}

// DeleteOrganization removes the organization and cascades over its members:
// every member is detached and forced inactive, but accounts are kept.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, p *auth.Principal, orgID string) error {
	if err := auth.CheckSuperAdmin(p); err != nil {
		return err
	}

	org, err := s.orgDAO.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	unbound, err := s.userDAO.UnbindOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	if err := s.orgDAO.DeleteOrganization(ctx, orgID); err != nil {
		return err
	}

	if err := s.cacheService.DeleteOrganization(ctx, orgID); err != nil {
		logger.Warn("Failed to invalidate organization cache", zap.Error(err), zap.String("organizationID", orgID))
	}
	s.eventBus.Publish(ctx, util.EventOrganizationDeleted, *org)
	if err := s.notificationSvc.NotifyAdmins(ctx, "organization deleted: "+org.Name); err != nil {
		logger.Warn("Failed to notify admins", zap.Error(err))
	}

	logger.Info("Organization deleted with member cascade",
		zap.String("organizationID", orgID),
		zap.Int64("membersUnbound", unbound))
	return nil
}

// ListOrganizations is a directory-wide view reserved for super admins.
func (s *OrganizationService) ListOrganizations(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Organization, model.Pagination, error) {
	if err := auth.CheckSuperAdmin(p); err != nil {
		return nil, model.Pagination{}, err
	}

	orgs, total, err := s.orgDAO.ListOrganizations(ctx, page, limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return orgs, model.NewPagination(page, limit, total), nil
}
