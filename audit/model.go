// api/audit/model.go
package audit

import (
	"errors"
	"time"
)

// Action enumerates the auditable operations.
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionRead     Action = "READ"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionLogin    Action = "LOGIN"
	ActionLogout   Action = "LOGOUT"
	ActionUpload   Action = "UPLOAD"
	ActionDownload Action = "DOWNLOAD"
)

// SystemOrganization is the sentinel organization id used for entries from
// actors not yet bound to any organization, e.g. a login before an
// organization exists.
const SystemOrganization = "system"

// RedactedValue replaces sensitive detail values before an entry is written.
const RedactedValue = "[REDACTED]"

// sensitiveKeys must never reach the store with their original values.
var sensitiveKeys = []string{"password", "token", "secret", "apiKey"}

// Entry is an immutable audit record. Once written it is never mutated.
type Entry struct {
	ID             string                 `json:"id,omitempty"`
	OrganizationID string                 `json:"organization_id"`
	UserID         string                 `json:"user_id"`
	Action         Action                 `json:"action"`
	Resource       string                 `json:"resource"`
	ResourceID     string                 `json:"resource_id,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
	IPAddress      string                 `json:"ip_address,omitempty"`
	UserAgent      string                 `json:"user_agent,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

// Validate checks that no required field is missing.
func (e *Entry) Validate() error {
	if e.UserID == "" {
		return errors.New("audit entry missing user id")
	}
	if e.Action == "" {
		return errors.New("audit entry missing action")
	}
	if e.Resource == "" {
		return errors.New("audit entry missing resource")
	}
	return nil
}

// Sanitize redacts sensitive keys in the details payload, recursing into
// nested maps. The entry's own map is replaced, not shared, so callers keep
// their original payload untouched.
func (e *Entry) Sanitize() {
	e.Details = sanitizeMap(e.Details)
}

func sanitizeMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			out[k] = RedactedValue
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = sanitizeMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitiveKey(key string) bool {
	for _, s := range sensitiveKeys {
		if key == s {
			return true
		}
	}
	return false
}
