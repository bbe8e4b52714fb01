// api/middleware/audit_logger.go

package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
)

// maxCapturedBody bounds how much of a request body ends up in an audit
// detail payload.
const maxCapturedBody = 64 * 1024

// auditSink is the write half of the audit pipeline. Record never blocks and
// never returns an error; failures are the pipeline's problem, not the
// request's.
type auditSink interface {
	Record(entry audit.Entry)
}

// AuditLogger emits one audit entry after the wrapped handler succeeds.
// The decision to record is made on the response status: a status of 400 or
// above means the operation did not happen, so nothing is recorded. Anonymous
// requests are never audited.
func AuditLogger(sink auditSink, action audit.Action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		details := captureRequestDetails(c)

		c.Next()

		principal, ok := auth.GetPrincipal(c)
		if !ok || c.Writer.Status() >= 400 {
			return
		}

		entry := audit.Entry{
			OrganizationID: principal.OrganizationID,
			UserID:         principal.ID,
			Action:         action,
			Resource:       resource,
			ResourceID:     c.Param("id"),
			Details:        details,
			IPAddress:      c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
		}
		sink.Record(entry)
	}
}

// captureRequestDetails snapshots the JSON request body before the handler
// consumes it, then restores the body so binding still works downstream.
func captureRequestDetails(c *gin.Context) map[string]interface{} {
	if c.Request.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCapturedBody))
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(body) == 0 {
		return nil
	}
	var details map[string]interface{}
	if err := json.Unmarshal(body, &details); err != nil {
		// Non-JSON bodies still get an entry, just without detail fields.
		return nil
	}
	return details
}
