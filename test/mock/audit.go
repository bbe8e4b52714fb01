// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dev-anuragk/assistly/api/audit"
)

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Search(ctx context.Context, filter audit.Filter, sort audit.Sort, page audit.Page) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, filter, sort, page)
	entries, _ := args.Get(0).([]audit.Entry)
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id string) (*audit.Entry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*audit.Entry)
	return entry, args.Error(1)
}

func (m *MockAuditRepository) CountByField(ctx context.Context, filter audit.Filter, field string) (map[string]int64, error) {
	args := m.Called(ctx, filter, field)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *MockAuditRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) error {
	args := m.Called(ctx, cutoff)
	return args.Error(0)
}
