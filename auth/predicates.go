// api/auth/predicates.go
package auth

import (
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

// Pure authorization predicates over a resolved principal. No I/O happens
// here; the middleware package adapts these to HTTP.
//
// Membership and rank checks are deliberately separate primitives: the four
// operational roles are peers in rank yet must sometimes be named explicitly
// in an allow-list, and collapsing the two checks would force rank inflation.

// CheckRoleIn succeeds when the principal's role is in the allow-list. The
// override role is always implicitly allowed.
func CheckRoleIn(p *Principal, allowed ...model.Role) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.Role.In(allowed...) {
		return nil
	}
	return app_errors.ErrInsufficientRole
}

// CheckMinRole succeeds when the principal's rank meets the threshold role's
// rank. Unrecognized roles rank 0 and never pass a positive threshold.
func CheckMinRole(p *Principal, threshold model.Role) error {
	if p.Role.AtLeast(threshold) {
		return nil
	}
	return app_errors.ErrInsufficientRole
}

// CheckOrganization succeeds when the principal is bound to an organization.
// The override role is organization-exempt.
func CheckOrganization(p *Principal) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.OrganizationID != "" {
		return nil
	}
	return app_errors.ErrNoOrganization
}

// CheckSameOrganization succeeds when the target organization is absent,
// matches the principal's, or the principal holds the override role.
func CheckSameOrganization(p *Principal, targetOrgID string) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if targetOrgID == "" || targetOrgID == p.OrganizationID {
		return nil
	}
	return app_errors.ErrCrossOrganization
}

// CheckSuperAdmin succeeds only for the override role.
func CheckSuperAdmin(p *Principal) error {
	if p.IsSuperAdmin() {
		return nil
	}
	return app_errors.ErrInsufficientRole
}

// CheckOrgAdmin succeeds for the organization owner role or the override role.
func CheckOrgAdmin(p *Principal) error {
	return CheckRoleIn(p, model.RoleCEO)
}
