// api/errors/org_errors.go
package errors

import "errors"

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrOrganizationConflict    = errors.New("organization with this name or domain already exists")
	ErrInvalidOrganizationData = errors.New("invalid organization data")
	ErrAlreadyInOrganization   = errors.New("user already belongs to an organization")
)
