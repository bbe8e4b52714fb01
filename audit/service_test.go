package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

func member(role model.Role, orgID string) *auth.Principal {
	return &auth.Principal{ID: "u1", Role: role, OrganizationID: orgID}
}

func seededService(t *testing.T, entries ...Entry) (Service, *memRepo) {
	t.Helper()
	repo := &memRepo{entries: entries}
	recorder := newTestRecorder(repo)
	t.Cleanup(recorder.Close)
	return NewService(repo, recorder), repo
}

func TestQueryScopesToOwnOrganization(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-1", UserID: "u1", Action: ActionRead, Resource: "doc"},
		Entry{ID: "2", OrganizationID: "org-2", UserID: "u2", Action: ActionRead, Resource: "doc"},
	)

	// The requested foreign filter is silently narrowed, not rejected.
	entries, pagination, err := svc.Query(context.Background(),
		member(model.RoleManager, "org-1"),
		Filter{OrganizationID: "org-2"}, Sort{}, Page{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "org-1", entries[0].OrganizationID)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestQueryOrglessPrincipalPinnedToSystem(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-1", UserID: "u2", Action: ActionRead, Resource: "doc"},
		Entry{ID: "2", OrganizationID: "org-2", UserID: "u3", Action: ActionRead, Resource: "doc"},
		Entry{ID: "3", OrganizationID: SystemOrganization, UserID: "u1", Action: ActionLogin, Resource: "auth"},
	)

	// A manager not yet bound to an organization must not fall through to an
	// unconstrained query over every organization's entries.
	entries, _, err := svc.Query(context.Background(),
		member(model.RoleManager, ""), Filter{}, Sort{}, Page{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SystemOrganization, entries[0].OrganizationID)

	stats, err := svc.Stats(context.Background(), member(model.RoleManager, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLogs)

	_, err = svc.GetByID(context.Background(), member(model.RoleManager, ""), "1")
	assert.ErrorIs(t, err, app_errors.ErrAccessDenied)
}

func TestQueryPagesPartitionMatchingSet(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var seed []Entry
	for i := 0; i < 7; i++ {
		seed = append(seed, Entry{
			ID:             fmt.Sprintf("e%d", i),
			OrganizationID: "org-1",
			UserID:         "u1",
			Action:         ActionRead,
			Resource:       "doc",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		})
	}
	svc, _ := seededService(t, seed...)

	// Walking every page must visit each matching entry exactly once, newest
	// first, with a stable total across pages.
	seen := map[string]int{}
	var previous *Entry
	for number := 1; number <= 3; number++ {
		entries, pagination, err := svc.Query(context.Background(),
			member(model.RoleManager, "org-1"),
			Filter{}, Sort{}, Page{Number: number, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), pagination.Total)
		assert.Equal(t, 3, pagination.TotalPages)

		for i := range entries {
			seen[entries[i].ID]++
			if previous != nil {
				assert.False(t, previous.Timestamp.Before(entries[i].Timestamp),
					"entry %s out of order", entries[i].ID)
			}
			previous = &entries[i]
		}
	}

	require.Len(t, seen, 7)
	for id, count := range seen {
		assert.Equal(t, 1, count, "entry %s", id)
	}
}

func TestQuerySuperAdminSeesEverything(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-1", UserID: "u1", Action: ActionRead, Resource: "doc"},
		Entry{ID: "2", OrganizationID: "org-2", UserID: "u2", Action: ActionRead, Resource: "doc"},
	)

	entries, _, err := svc.Query(context.Background(),
		member(model.RoleSuperAdmin, ""), Filter{}, Sort{}, Page{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMyLogsPinsUserID(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-1", UserID: "u1", Action: ActionRead, Resource: "doc"},
		Entry{ID: "2", OrganizationID: "org-1", UserID: "u2", Action: ActionRead, Resource: "doc"},
	)

	entries, _, err := svc.MyLogs(context.Background(),
		member(model.RoleDeveloper, "org-1"), Sort{}, Page{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u1", entries[0].UserID)
}

func TestGetByIDForeignOrganizationIsDenied(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-2", UserID: "u2", Action: ActionRead, Resource: "doc"},
	)

	_, err := svc.GetByID(context.Background(), member(model.RoleManager, "org-1"), "1")
	assert.ErrorIs(t, err, app_errors.ErrAccessDenied)

	entry, err := svc.GetByID(context.Background(), member(model.RoleSuperAdmin, ""), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", entry.ID)
}

func TestGetByIDMissingEntry(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.GetByID(context.Background(), member(model.RoleManager, "org-1"), "missing")
	assert.ErrorIs(t, err, app_errors.ErrAuditLogNotFound)
}

func TestStatsScopedTotal(t *testing.T) {
	svc, _ := seededService(t,
		Entry{ID: "1", OrganizationID: "org-1", UserID: "u1", Action: ActionRead, Resource: "doc"},
		Entry{ID: "2", OrganizationID: "org-1", UserID: "u2", Action: ActionCreate, Resource: "user"},
		Entry{ID: "3", OrganizationID: "org-2", UserID: "u3", Action: ActionRead, Resource: "doc"},
	)

	stats, err := svc.Stats(context.Background(), member(model.RoleManager, "org-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalLogs)
}
