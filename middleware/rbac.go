// api/middleware/rbac.go

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// guard adapts a pure predicate over the principal to a gin middleware.
// A missing principal is a 401; a failed predicate is a 403.
func guard(check func(p *auth.Principal) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			util.RespondWithError(c, http.StatusUnauthorized,
				app_errors.ErrUnauthorized.Error(), app_errors.ErrUnauthorized)
			return
		}
		if err := check(principal); err != nil {
			util.RespondWithError(c, http.StatusForbidden, err.Error(), err)
			return
		}
		c.Next()
	}
}

// RequireRole admits only the listed roles. The override role always passes.
func RequireRole(allowed ...model.Role) gin.HandlerFunc {
	return guard(func(p *auth.Principal) error {
		return auth.CheckRoleIn(p, allowed...)
	})
}

// RequireMinRole admits principals whose role ranks at or above the threshold.
func RequireMinRole(threshold model.Role) gin.HandlerFunc {
	return guard(func(p *auth.Principal) error {
		return auth.CheckMinRole(p, threshold)
	})
}

// RequireOrganization admits only principals bound to an organization.
func RequireOrganization() gin.HandlerFunc {
	return guard(auth.CheckOrganization)
}

// RequireSameOrganization compares the principal's organization against the
// named path parameter when it is present.
func RequireSameOrganization(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			util.RespondWithError(c, http.StatusUnauthorized,
				app_errors.ErrUnauthorized.Error(), app_errors.ErrUnauthorized)
			return
		}
		if err := auth.CheckSameOrganization(principal, c.Param(param)); err != nil {
			util.RespondWithError(c, http.StatusForbidden, err.Error(), err)
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin admits only the override role.
func RequireSuperAdmin() gin.HandlerFunc {
	return guard(auth.CheckSuperAdmin)
}

// RequireOrgAdmin admits the organization owner role or the override role.
func RequireOrgAdmin() gin.HandlerFunc {
	return guard(auth.CheckOrgAdmin)
}
