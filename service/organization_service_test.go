package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// fakeOrgStore is an in-memory organizationStore standing in for the
// Neo4j-backed DAO.
type fakeOrgStore struct {
	orgs map[string]*model.Organization
}

func (f *fakeOrgStore) CreateOrganization(ctx context.Context, org model.Organization) (string, error) {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	copied := org
	f.orgs[org.ID] = &copied
	return org.ID, nil
}

func (f *fakeOrgStore) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	if org, ok := f.orgs[orgID]; ok {
		copied := *org
		return &copied, nil
	}
	return nil, app_errors.ErrOrganizationNotFound
}

func (f *fakeOrgStore) FindByNameOrDomain(ctx context.Context, name, domain string) (*model.Organization, error) {
	for _, org := range f.orgs {
		if org.Name == name || (domain != "" && org.Domain == domain) {
			copied := *org
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOrgStore) UpdateOrganization(ctx context.Context, org model.Organization) (*model.Organization, error) {
	if _, ok := f.orgs[org.ID]; !ok {
		return nil, app_errors.ErrOrganizationNotFound
	}
	copied := org
	f.orgs[org.ID] = &copied
	return &org, nil
}

func (f *fakeOrgStore) DeleteOrganization(ctx context.Context, orgID string) error {
	if _, ok := f.orgs[orgID]; !ok {
		return app_errors.ErrOrganizationNotFound
	}
	delete(f.orgs, orgID)
	return nil
}

func (f *fakeOrgStore) ListOrganizations(ctx context.Context, page, limit int) ([]*model.Organization, int64, error) {
	var out []*model.Organization
	for _, org := range f.orgs {
		copied := *org
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

// fakeMembers is an in-memory memberDirectory.
type fakeMembers struct {
	users map[string]*model.User
}

func (f *fakeMembers) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if user, ok := f.users[userID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, app_errors.ErrUserNotFound
}

func (f *fakeMembers) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, app_errors.ErrUserNotFound
	}
	copied := user
	f.users[user.ID] = &copied
	return &user, nil
}

func (f *fakeMembers) UnbindOrganization(ctx context.Context, orgID string) (int64, error) {
	var unbound int64
	for _, user := range f.users {
		if user.OrganizationID != orgID {
			continue
		}
		user.OrganizationID = ""
		user.Status = model.StatusInactive
		unbound++
	}
	return unbound, nil
}

// fakeOrgCache records invalidations instead of talking to Redis.
type fakeOrgCache struct {
	deletedOrgs  []string
	deletedUsers []string
}

func (f *fakeOrgCache) SetOrganization(ctx context.Context, org model.Organization) error { return nil }
func (f *fakeOrgCache) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	return nil, nil
}
func (f *fakeOrgCache) DeleteOrganization(ctx context.Context, orgID string) error {
	f.deletedOrgs = append(f.deletedOrgs, orgID)
	return nil
}
func (f *fakeOrgCache) DeleteUser(ctx context.Context, userID string) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) NotifyAdmins(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return nil
}

func newOrgService(store *fakeOrgStore, members *fakeMembers, cache *fakeOrgCache, notifier *fakeNotifier) *OrganizationService {
	return NewOrganizationService(store, members, util.NewValidationUtil(), cache, notifier, util.NewEventBus())
}

func superAdmin() *auth.Principal {
	return &auth.Principal{ID: "root", Role: model.RoleSuperAdmin}
}

func TestDeleteOrganizationCascadesOverMembers(t *testing.T) {
	store := &fakeOrgStore{orgs: map[string]*model.Organization{
		"org-1": {ID: "org-1", Name: "Acme", AdminUserID: "ceo-1", IsActive: true},
	}}
	members := &fakeMembers{users: map[string]*model.User{
		"ceo-1": {ID: "ceo-1", Email: "ceo@acme.test", FirstName: "Cate", Role: model.RoleCEO, OrganizationID: "org-1", Status: model.StatusActive},
		"dev-1": {ID: "dev-1", Email: "dev@acme.test", FirstName: "Dee", Role: model.RoleDeveloper, OrganizationID: "org-1", Status: model.StatusActive},
		"out-1": {ID: "out-1", Email: "out@other.test", FirstName: "Omar", Role: model.RoleManager, OrganizationID: "org-2", Status: model.StatusActive},
	}}
	cache := &fakeOrgCache{}
	notifier := &fakeNotifier{}
	svc := newOrgService(store, members, cache, notifier)

	err := svc.DeleteOrganization(context.Background(), superAdmin(), "org-1")
	require.NoError(t, err)

	// The organization is gone; its members are detached and deactivated but
	// their accounts survive.
	_, ok := store.orgs["org-1"]
	assert.False(t, ok)
	for _, id := range []string{"ceo-1", "dev-1"} {
		user := members.users[id]
		assert.Empty(t, user.OrganizationID, id)
		assert.Equal(t, model.StatusInactive, user.Status, id)
	}
	untouched := members.users["out-1"]
	assert.Equal(t, "org-2", untouched.OrganizationID)
	assert.Equal(t, model.StatusActive, untouched.Status)

	assert.Contains(t, cache.deletedOrgs, "org-1")
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Acme")
}

func TestDeleteOrganizationRequiresSuperAdmin(t *testing.T) {
	store := &fakeOrgStore{orgs: map[string]*model.Organization{
		"org-1": {ID: "org-1", Name: "Acme", AdminUserID: "ceo-1", IsActive: true},
	}}
	members := &fakeMembers{users: map[string]*model.User{
		"ceo-1": {ID: "ceo-1", Email: "ceo@acme.test", FirstName: "Cate", Role: model.RoleCEO, OrganizationID: "org-1", Status: model.StatusActive},
	}}
	svc := newOrgService(store, members, &fakeOrgCache{}, &fakeNotifier{})

	owner := &auth.Principal{ID: "ceo-1", Role: model.RoleCEO, OrganizationID: "org-1"}
	err := svc.DeleteOrganization(context.Background(), owner, "org-1")
	assert.ErrorIs(t, err, app_errors.ErrInsufficientRole)

	_, ok := store.orgs["org-1"]
	assert.True(t, ok)
	assert.Equal(t, model.StatusActive, members.users["ceo-1"].Status)
}

func TestCreateOrganizationPromotesCreator(t *testing.T) {
	store := &fakeOrgStore{orgs: map[string]*model.Organization{}}
	members := &fakeMembers{users: map[string]*model.User{
		"u1": {ID: "u1", Email: "founder@acme.test", FirstName: "Fen", Role: model.RoleDeveloper, Status: model.StatusActive},
	}}
	svc := newOrgService(store, members, &fakeOrgCache{}, &fakeNotifier{})

	creator := &auth.Principal{ID: "u1", Role: model.RoleDeveloper}
	created, err := svc.CreateOrganization(context.Background(), creator, model.Organization{Name: "Acme"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.AdminUserID)

	promoted := members.users["u1"]
	assert.Equal(t, model.RoleCEO, promoted.Role)
	assert.Equal(t, created.ID, promoted.OrganizationID)
}

func TestCreateOrganizationEmptyDomainsDoNotConflict(t *testing.T) {
	store := &fakeOrgStore{orgs: map[string]*model.Organization{
		"org-1": {ID: "org-1", Name: "First", AdminUserID: "x", IsActive: true},
	}}
	members := &fakeMembers{users: map[string]*model.User{
		"u1": {ID: "u1", Email: "founder@second.test", FirstName: "Fen", Role: model.RoleDeveloper, Status: model.StatusActive},
	}}
	svc := newOrgService(store, members, &fakeOrgCache{}, &fakeNotifier{})

	creator := &auth.Principal{ID: "u1", Role: model.RoleDeveloper}

	// Neither organization has a domain; only the names may collide.
	created, err := svc.CreateOrganization(context.Background(), creator, model.Organization{Name: "Second"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = svc.CreateOrganization(context.Background(),
		&auth.Principal{ID: "u1", Role: model.RoleSuperAdmin}, model.Organization{Name: "First"})
	assert.ErrorIs(t, err, app_errors.ErrOrganizationConflict)
}
