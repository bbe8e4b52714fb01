// api/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/dao"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// TokenPair bundles the credentials issued on a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, *TokenPair, error)
	Logout(ctx context.Context, p *auth.Principal, ip, userAgent string) error
	GetProfile(ctx context.Context, p *auth.Principal) (*model.User, error)
	UpdateProfile(ctx context.Context, p *auth.Principal, firstName, lastName string) (*model.User, error)
	ChangePassword(ctx context.Context, p *auth.Principal, oldPassword, newPassword string) error
}

type AuthService struct {
	userDAO        *dao.UserDAO
	tokens         *auth.TokenManager
	auditService   audit.Service
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
}

var _ IAuthService = &AuthService{}

func NewAuthService(userDAO *dao.UserDAO, tokens *auth.TokenManager, auditService audit.Service, validationUtil *util.ValidationUtil, cacheService *util.CacheService) *AuthService {
	return &AuthService{
		userDAO:        userDAO,
		tokens:         tokens,
		auditService:   auditService,
		validationUtil: validationUtil,
		cacheService:   cacheService,
	}
}

// Login verifies the credentials against the directory. Every failure mode
// collapses into the same invalid-credentials error so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, *TokenPair, error) {
	user, err := s.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, nil, app_errors.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if user.Status != model.StatusActive {
		logger.Warn("Login attempt for non-active account",
			zap.String("userID", user.ID),
			zap.String("status", string(user.Status)))
		return nil, nil, app_errors.ErrInvalidCredentials
	}
	if !auth.ComparePassword(user.Password, password) {
		return nil, nil, app_errors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if err := s.userDAO.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// The login itself already succeeded.
		logger.Warn("Failed to stamp last login", zap.Error(err), zap.String("userID", user.ID))
	}
	user.LastLoginAt = &now

	s.auditService.Record(audit.Entry{
		OrganizationID: user.OrganizationID,
		UserID:         user.ID,
		Action:         audit.ActionLogin,
		Resource:       "auth",
		IPAddress:      ip,
		UserAgent:      userAgent,
	})

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Logout(ctx context.Context, p *auth.Principal, ip, userAgent string) error {
	s.auditService.Record(audit.Entry{
		OrganizationID: p.OrganizationID,
		UserID:         p.ID,
		Action:         audit.ActionLogout,
		Resource:       "auth",
		IPAddress:      ip,
		UserAgent:      userAgent,
	})
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, p *auth.Principal) (*model.User, error) {
	return s.userDAO.GetUser(ctx, p.ID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, p *auth.Principal, firstName, lastName string) (*model.User, error) {
	user, err := s.userDAO.GetUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if err := s.validationUtil.ValidateUser(*user); err != nil {
		return nil, app_errors.ErrInvalidUserData
	}

	updated, err := s.userDAO.UpdateUser(ctx, *user)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.DeleteUser(ctx, updated.ID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("userID", updated.ID))
	}
	return updated, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, p *auth.Principal, oldPassword, newPassword string) error {
	user, err := s.userDAO.GetUser(ctx, p.ID)
	if err != nil {
		return err
	}
	if !auth.ComparePassword(user.Password, oldPassword) {
		return app_errors.ErrInvalidCredentials
	}
	if err := s.validationUtil.ValidatePassword(newPassword); err != nil {
		return app_errors.ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if _, err := s.userDAO.UpdateUser(ctx, *user); err != nil {
		return err
	}
	if err := s.cacheService.DeleteUser(ctx, user.ID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("userID", user.ID))
	}
	return nil
}
