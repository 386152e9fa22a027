package http

import (
	"github.com/mrlokans/recruiter/internal/database"
	"github.com/mrlokans/recruiter/internal/importers"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	Candidates CandidateStore

	// ApplicationLimiter throttles the public application form per client
	// IP. Nil disables throttling.
	ApplicationLimiter *SubmissionLimiter

	// Import wizard
	Sessions        *importers.SessionStore
	ImportCommitter ImportCommitter
	ImportHistory   ImportHistory
	MaxUploadBytes  int64

	// Task queue (optional). Commits with more accepted records than
	// AsyncThreshold are queued when Enqueuer is set.
	Enqueuer       ImportEnqueuer
	TaskStatus     TaskStatusReader
	AsyncThreshold int

	// Audit (optional)
	Auditor     CandidateAuditor
	AuditReader AuditReader

	// Application info
	Version string
}
