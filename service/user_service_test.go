package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

func TestListUsersRequiresOrganization(t *testing.T) {
	svc := &UserService{}

	// A manager without an organization has no scope to narrow to. Letting
	// the empty filter through would list the entire directory, so the
	// request is rejected before it reaches the store.
	orgless := &auth.Principal{ID: "u1", Role: model.RoleManager}
	_, _, err := svc.ListUsers(context.Background(), orgless, model.UserSearchCriteria{})
	assert.ErrorIs(t, err, app_errors.ErrNoOrganization)

	// The requested filter cannot widen the scope either.
	_, _, err = svc.ListUsers(context.Background(), orgless,
		model.UserSearchCriteria{OrganizationID: "org-2"})
	assert.ErrorIs(t, err, app_errors.ErrNoOrganization)
}
