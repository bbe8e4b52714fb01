package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/config"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

type fakeUserCreator struct {
	existing map[string]*model.User
	created  []model.User
}

func (f *fakeUserCreator) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if user, ok := f.existing[email]; ok {
		return user, nil
	}
	return nil, app_errors.ErrUserNotFound
}

func (f *fakeUserCreator) CreateUser(ctx context.Context, user model.User) (string, error) {
	f.created = append(f.created, user)
	return "seeded-id", nil
}

func TestSeedSuperAdminCreatesAccount(t *testing.T) {
	users := &fakeUserCreator{existing: map[string]*model.User{}}
	admin := config.AdminConfiguration{Email: "root@example.com", Password: "bootstrap-pass"}

	require.NoError(t, SeedSuperAdmin(context.Background(), users, admin))
	require.Len(t, users.created, 1)

	seeded := users.created[0]
	assert.Equal(t, "root@example.com", seeded.Email)
	assert.Equal(t, model.RoleSuperAdmin, seeded.Role)
	assert.Equal(t, model.StatusActive, seeded.Status)
	assert.Empty(t, seeded.OrganizationID)

	// The stored password is a hash of the configured one.
	assert.NotEqual(t, "bootstrap-pass", seeded.Password)
	assert.True(t, auth.ComparePassword(seeded.Password, "bootstrap-pass"))
}

func TestSeedSuperAdminIsIdempotent(t *testing.T) {
	users := &fakeUserCreator{existing: map[string]*model.User{
		"root@example.com": {ID: "u1", Email: "root@example.com", Role: model.RoleSuperAdmin},
	}}
	admin := config.AdminConfiguration{Email: "root@example.com", Password: "bootstrap-pass"}

	require.NoError(t, SeedSuperAdmin(context.Background(), users, admin))
	assert.Empty(t, users.created)
}

func TestSeedSuperAdminSkipsWhenUnconfigured(t *testing.T) {
	users := &fakeUserCreator{existing: map[string]*model.User{}}

	require.NoError(t, SeedSuperAdmin(context.Background(), users, config.AdminConfiguration{}))
	assert.Empty(t, users.created)
}
