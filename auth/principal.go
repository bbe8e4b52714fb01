// api/auth/principal.go
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/model"
)

const principalKey = "principal"

// Principal is the authenticated actor for one request. It is rebuilt from
// current directory state on every request rather than persisted, so role or
// organization changes take effect on the very next call.
type Principal struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           model.Role `json:"role"`
	OrganizationID string     `json:"organization_id,omitempty"`
}

// IsSuperAdmin reports whether the principal holds the override role that
// bypasses organization scoping and role allow-lists.
func (p *Principal) IsSuperAdmin() bool {
	return p.Role == model.RoleSuperAdmin
}

// SetPrincipal attaches the resolved principal to the request context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
	c.Set("requestingUserID", p.ID)
}

// GetPrincipal extracts the principal attached by the authentication
// middleware. The second return is false for anonymous requests.
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
