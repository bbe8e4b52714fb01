// api/auth/token.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dev-anuragk/assistly/api/config"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

const issuer = "assistly"

// Claims carried inside access tokens. Role and organization are embedded for
// client convenience only; the authentication middleware re-reads both from
// the user directory on every request, so stale claims are harmless.
type Claims struct {
	Email          string     `json:"email"`
	Role           model.Role `json:"role,omitempty"`
	OrganizationID string     `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens. The secret comes from
// the injected configuration, never from ambient state, so tests can run with
// isolated managers.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(cfg config.JWTConfiguration) (*TokenManager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	ttl := cfg.ExpiresIn
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	refreshTTL := cfg.RefreshExpiresIn
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue signs an access token for the given user.
func (tm *TokenManager) Issue(user *model.User) (string, error) {
	return tm.sign(user, tm.ttl, true)
}

// IssueRefresh signs a refresh token carrying only identity, no role claims.
func (tm *TokenManager) IssueRefresh(user *model.User) (string, error) {
	return tm.sign(user, tm.refreshTTL, false)
}

func (tm *TokenManager) sign(user *model.User, ttl time.Duration, withRole bool) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if withRole {
		claims.Role = user.Role
		claims.OrganizationID = user.OrganizationID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks the token's shape, signature and expiry. The three failure
// modes are kept distinct because the guard maps them to distinct
// user-visible messages.
func (tm *TokenManager) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, app_errors.ErrMalformedToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, app_errors.ErrInvalidSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, app_errors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, app_errors.ErrInvalidSignature
		default:
			return nil, app_errors.ErrMalformedToken
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, app_errors.ErrMalformedToken
	}
	if claims.Issuer != issuer || strings.TrimSpace(claims.Subject) == "" {
		return nil, app_errors.ErrMalformedToken
	}
	return claims, nil
}
