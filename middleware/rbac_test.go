package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/model"
)

// withPrincipal injects a resolved principal, standing in for the
// authentication middleware.
func withPrincipal(p *auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			auth.SetPrincipal(c, p)
		}
		c.Next()
	}
}

func rbacStatus(p *auth.Principal, guard gin.HandlerFunc, path string) int {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/t/:id", withPrincipal(p), guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func rbacPrincipal(role model.Role, orgID string) *auth.Principal {
	return &auth.Principal{ID: "u1", Role: role, OrganizationID: orgID}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized,
		rbacStatus(nil, RequireRole(model.RoleHR), "/t/1"))
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(model.RoleHR, model.RoleFinance)

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleHR, "org-1"), guard, "/t/1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleSupport, "org-1"), guard, "/t/1"))
	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleSuperAdmin, ""), guard, "/t/1"))
}

func TestRequireMinRole(t *testing.T) {
	guard := RequireMinRole(model.RoleManager)

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleCEO, "org-1"), guard, "/t/1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleDeveloper, "org-1"), guard, "/t/1"))
}

func TestRequireOrganization(t *testing.T) {
	guard := RequireOrganization()

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleDeveloper, "org-1"), guard, "/t/1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleDeveloper, ""), guard, "/t/1"))
	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleSuperAdmin, ""), guard, "/t/1"))
}

func TestRequireSameOrganization(t *testing.T) {
	guard := RequireSameOrganization("id")

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleManager, "org-1"), guard, "/t/org-1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleManager, "org-1"), guard, "/t/org-2"))
	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleSuperAdmin, ""), guard, "/t/org-2"))
}

func TestRequireSuperAdmin(t *testing.T) {
	guard := RequireSuperAdmin()

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleSuperAdmin, ""), guard, "/t/1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleCEO, "org-1"), guard, "/t/1"))
}

func TestRequireOrgAdmin(t *testing.T) {
	guard := RequireOrgAdmin()

	assert.Equal(t, http.StatusOK,
		rbacStatus(rbacPrincipal(model.RoleCEO, "org-1"), guard, "/t/1"))
	assert.Equal(t, http.StatusForbidden,
		rbacStatus(rbacPrincipal(model.RoleManager, "org-1"), guard, "/t/1"))
}

// Guards are pure reads over the principal, so repeating one must not change
// the outcome.
func TestGuardIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guard := RequireMinRole(model.RoleManager)
	router.GET("/t/:id", withPrincipal(rbacPrincipal(model.RoleManager, "org-1")), guard, guard, guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/t/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
