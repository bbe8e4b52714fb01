// api/middleware/auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// userDirectory is the slice of the user DAO the guard needs: current state
// for one account.
type userDirectory interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// Authenticator verifies bearer tokens and resolves the request principal
// from current directory state. The token only proves identity; role and
// organization always come from the directory so revocations and demotions
// take effect on the next request.
type Authenticator struct {
	tokens *auth.TokenManager
	users  userDirectory
}

func NewAuthenticator(tokens *auth.TokenManager, users userDirectory) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate rejects the request unless it carries a valid token bound to
// an active account.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractBearerToken(c)
		if err != nil {
			util.RespondWithError(c, http.StatusUnauthorized, err.Error(), err)
			return
		}

		principal, err := a.resolve(c, raw)
		if err != nil {
			if !credentialFailure(err) {
				// A directory outage is not the caller's fault and must not
				// read as a bad token.
				logger.Error("Failed to resolve principal", zap.Error(err))
				util.RespondWithError(c, http.StatusInternalServerError,
					app_errors.ErrInternalServer.Error(), err)
				return
			}
			util.RespondWithError(c, http.StatusUnauthorized, err.Error(), err)
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}

// credentialFailure reports whether the resolve error is a problem with the
// presented credentials rather than with the infrastructure behind them.
func credentialFailure(err error) bool {
	return errors.Is(err, app_errors.ErrMalformedToken) ||
		errors.Is(err, app_errors.ErrTokenExpired) ||
		errors.Is(err, app_errors.ErrInvalidSignature) ||
		errors.Is(err, app_errors.ErrUserNotFoundOrInactive)
}

// OptionalAuthenticate resolves a principal when a valid token is present and
// stays silent otherwise. Handlers behind it must treat a missing principal
// as anonymous.
func (a *Authenticator) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		principal, err := a.resolve(c, raw)
		if err != nil {
			logger.Debug("Optional authentication failed", zap.Error(err))
			c.Next()
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}

func (a *Authenticator) resolve(c *gin.Context, raw string) (*auth.Principal, error) {
	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetUser(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, app_errors.ErrUserNotFoundOrInactive
		}
		return nil, err
	}
	if user.Status != model.StatusActive {
		logger.Warn("Rejected token for non-active account",
			zap.String("userID", user.ID),
			zap.String("status", string(user.Status)))
		return nil, app_errors.ErrUserNotFoundOrInactive
	}

	return &auth.Principal{
		ID:             user.ID,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}, nil
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", app_errors.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", app_errors.ErrMalformedToken
	}
	return strings.TrimSpace(parts[1]), nil
}
