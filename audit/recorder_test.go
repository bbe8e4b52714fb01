package audit

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/config"
)

// memRepo is an in-memory Repository used to observe what the recorder
// actually writes.
type memRepo struct {
	mu      sync.Mutex
	entries []Entry
	fail    bool
}

func (m *memRepo) Insert(ctx context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assert.AnError
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memRepo) Search(ctx context.Context, filter Filter, order Sort, page Page) ([]Entry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if filter.OrganizationID != "" && e.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order.Ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[j].Timestamp.Before(out[i].Timestamp)
	})

	total := int64(len(out))
	start := page.Skip()
	if start > len(out) {
		start = len(out)
	}
	end := start + page.Normalized().Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (m *memRepo) CountByField(ctx context.Context, filter Filter, field string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *memRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) error {
	return nil
}

func (m *memRepo) all() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func newTestRecorder(repo Repository) *Recorder {
	return NewRecorder(repo, config.AuditConfiguration{QueueSize: 16, WriteTimeout: time.Second})
}

func TestRecorderWritesSanitizedEntry(t *testing.T) {
	repo := &memRepo{}
	recorder := newTestRecorder(repo)

	recorder.Record(Entry{
		UserID:   "u1",
		Action:   ActionUpdate,
		Resource: "user",
		Details:  map[string]interface{}{"password": "hunter2", "name": "dev"},
	})
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 1)
	got := entries[0]
	assert.Equal(t, RedactedValue, got.Details["password"])
	assert.Equal(t, "dev", got.Details["name"])
	assert.False(t, got.Timestamp.IsZero())
}

func TestRecorderAppliesOrganizationSentinel(t *testing.T) {
	repo := &memRepo{}
	recorder := newTestRecorder(repo)

	recorder.Record(Entry{UserID: "u1", Action: ActionLogin, Resource: "auth"})
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 1)
	assert.Equal(t, SystemOrganization, entries[0].OrganizationID)
}

func TestRecorderDropsInvalidEntry(t *testing.T) {
	repo := &memRepo{}
	recorder := newTestRecorder(repo)

	recorder.Record(Entry{Action: ActionLogin, Resource: "auth"}) // no user
	recorder.Record(Entry{UserID: "u1", Resource: "auth"})        // no action
	recorder.Close()

	assert.Empty(t, repo.all())
}

func TestRecorderCloseDrainsQueue(t *testing.T) {
	repo := &memRepo{}
	recorder := newTestRecorder(repo)

	for i := 0; i < 10; i++ {
		recorder.Record(Entry{UserID: "u1", Action: ActionRead, Resource: "doc"})
	}
	recorder.Close()

	assert.Len(t, repo.all(), 10)
}

func TestRecorderSurvivesWriteFailure(t *testing.T) {
	repo := &memRepo{fail: true}
	recorder := newTestRecorder(repo)

	// A failing store must not panic or block the producer.
	recorder.Record(Entry{UserID: "u1", Action: ActionRead, Resource: "doc"})
	recorder.Close()

	assert.Empty(t, repo.all())
}

func TestRecorderPreservesOrder(t *testing.T) {
	repo := &memRepo{}
	recorder := newTestRecorder(repo)

	actions := []Action{ActionCreate, ActionUpdate, ActionDelete}
	for _, a := range actions {
		recorder.Record(Entry{UserID: "u1", Action: a, Resource: "user"})
	}
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 3)
	for i, a := range actions {
		assert.Equal(t, a, entries[i].Action)
	}
}
