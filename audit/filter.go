// api/audit/filter.go
package audit

import "time"

// Filter enumerates every recognized query parameter explicitly. Unknown
// fields have nowhere to go, which keeps the query surface closed.
type Filter struct {
	OrganizationID string
	UserID         string
	Action         Action
	Resource       string
	StartDate      *time.Time
	EndDate        *time.Time
}

// Sort controls result ordering. The zero value means timestamp descending.
type Sort struct {
	Field     string
	Ascending bool
}

func (s Sort) FieldOrDefault() string {
	if s.Field == "" {
		return "timestamp"
	}
	return s.Field
}

// Page is a skip/limit window over the filtered set.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Page) Skip() int {
	n := p.Normalized()
	return (n.Number - 1) * n.Limit
}
