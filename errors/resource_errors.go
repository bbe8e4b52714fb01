// api/errors/resource_errors.go
package errors

import "errors"

var (
	ErrChatNotFound        = errors.New("chat not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrAuditLogNotFound    = errors.New("audit log not found")
	ErrInvalidChatData     = errors.New("invalid chat data")
	ErrInvalidDocumentData = errors.New("invalid document data")
)
