// api/audit/service.go
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

// Service is the audit surface used by the rest of the application: a
// fire-and-forget recorder plus an organization-scoped query side.
type Service interface {
	Record(entry Entry)
	Query(ctx context.Context, p *auth.Principal, filter Filter, sort Sort, page Page) ([]Entry, model.Pagination, error)
	MyLogs(ctx context.Context, p *auth.Principal, sort Sort, page Page) ([]Entry, model.Pagination, error)
	GetByID(ctx context.Context, p *auth.Principal, id string) (*Entry, error)
	Stats(ctx context.Context, p *auth.Principal) (*Stats, error)
	Close()
}

// Stats summarizes audit activity visible to a principal.
type Stats struct {
	TotalLogs      int64            `json:"total_logs"`
	ActionStats    map[string]int64 `json:"action_stats"`
	ResourceStats  map[string]int64 `json:"resource_stats"`
	RecentActivity []Entry          `json:"recent_activity"`
}

type service struct {
	recorder *Recorder
	repo     Repository
}

func NewService(repo Repository, recorder *Recorder) Service {
	return &service{recorder: recorder, repo: repo}
}

func (s *service) Record(entry Entry) {
	s.recorder.Record(entry)
}

func (s *service) Close() {
	s.recorder.Close()
}

// effectiveOrganization is the organization a non-override principal is
// scoped to. A principal not yet bound to one only sees the system sentinel,
// never the whole store: an empty filter would match everything downstream.
func effectiveOrganization(p *auth.Principal) string {
	if p.OrganizationID == "" {
		return SystemOrganization
	}
	return p.OrganizationID
}

// scope pins the filter to the principal's organization. Non-override
// principals cannot widen their view no matter what the request asked for;
// the filter is silently narrowed, not rejected.
func scope(p *auth.Principal, filter Filter) Filter {
	if !p.IsSuperAdmin() {
		filter.OrganizationID = effectiveOrganization(p)
	}
	return filter
}

func (s *service) Query(ctx context.Context, p *auth.Principal, filter Filter, sort Sort, page Page) ([]Entry, model.Pagination, error) {
	filter = scope(p, filter)
	page = page.Normalized()

	entries, total, err := s.repo.Search(ctx, filter, sort, page)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return entries, model.NewPagination(page.Number, page.Limit, total), nil
}

// MyLogs constrains to the principal's own entries. No organization filter is
// needed: the actor's entries are already a subset of what they may see.
func (s *service) MyLogs(ctx context.Context, p *auth.Principal, sort Sort, page Page) ([]Entry, model.Pagination, error) {
	page = page.Normalized()
	filter := Filter{UserID: p.ID}

	entries, total, err := s.repo.Search(ctx, filter, sort, page)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return entries, model.NewPagination(page.Number, page.Limit, total), nil
}

// GetByID fetches one entry, rejecting entries of foreign organizations.
// Audit entries answer with AccessDenied rather than not-found: their
// existence is not a secret inside the platform.
func (s *service) GetByID(ctx context.Context, p *auth.Principal, id string) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, app_errors.ErrAuditLogNotFound
	}
	if !p.IsSuperAdmin() && entry.OrganizationID != effectiveOrganization(p) {
		return nil, app_errors.ErrAccessDenied
	}
	return entry, nil
}

func (s *service) Stats(ctx context.Context, p *auth.Principal) (*Stats, error) {
	filter := scope(p, Filter{})

	_, total, err := s.repo.Search(ctx, filter, Sort{}, Page{Number: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	actionStats, err := s.repo.CountByField(ctx, filter, "action")
	if err != nil {
		return nil, err
	}
	resourceStats, err := s.repo.CountByField(ctx, filter, "resource")
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.Search(ctx, filter, Sort{}, Page{Number: 1, Limit: 10})
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalLogs:      total,
		ActionStats:    actionStats,
		ResourceStats:  resourceStats,
		RecentActivity: recent,
	}, nil
}

// StartRetentionJanitor purges entries older than retentionDays once a day.
// A zero or negative retention disables purging entirely.
func StartRetentionJanitor(ctx context.Context, repo Repository, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
			if err := repo.PurgeOlderThan(ctx, cutoff); err != nil {
				logger.Error("Audit retention purge failed", zap.Error(err))
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
}
