// api/audit/recorder.go
package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/config"
	logger "github.com/dev-anuragk/assistly/api/logging"
)

// Recorder appends audit entries without ever blocking or failing the action
// being audited. Entries are queued to a single background worker, which
// preserves per-actor request order while keeping the request path free of
// store latency. A full queue or a failed write is logged and the entry
// dropped: losing an audit entry is preferable to degrading user-facing
// operations.
type Recorder struct {
	repo         Repository
	queue        chan Entry
	writeTimeout time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

func NewRecorder(repo Repository, cfg config.AuditConfiguration) *Recorder {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	r := &Recorder{
		repo:         repo,
		queue:        make(chan Entry, queueSize),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
	go r.run()
	return r
}

// Record validates, sanitizes and timestamps the entry, then hands it to the
// background worker. It returns immediately; failures are logged, never
// surfaced, never retried.
func (r *Recorder) Record(entry Entry) {
	if err := entry.Validate(); err != nil {
		logger.Error("Dropping invalid audit entry", zap.Error(err),
			zap.String("resource", entry.Resource))
		return
	}
	if entry.OrganizationID == "" {
		entry.OrganizationID = SystemOrganization
	}
	entry.Sanitize()
	entry.Timestamp = time.Now().UTC()

	select {
	case r.queue <- entry:
	default:
		logger.Error("Audit queue full, dropping entry",
			zap.String("userID", entry.UserID),
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.Resource))
	}
}

// run drains the queue until Close. Writes are detached from any client
// connection: the request that produced an entry may long since have
// completed when its write lands.
func (r *Recorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		if err := r.repo.Insert(ctx, entry); err != nil {
			logger.Error("Audit write failed",
				zap.Error(err),
				zap.String("userID", entry.UserID),
				zap.String("action", string(entry.Action)),
				zap.String("resource", entry.Resource))
		}
		cancel()
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (r *Recorder) Close() {
	r.stopOnce.Do(func() {
		close(r.queue)
	})
	<-r.done
}
