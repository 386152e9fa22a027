package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/database/candidates"
	"github.com/mrlokans/recruiter/internal/database/imports"
	"github.com/mrlokans/recruiter/internal/http"
	"github.com/mrlokans/recruiter/internal/importers"
	"github.com/mrlokans/recruiter/internal/scheduler"
	"github.com/mrlokans/recruiter/internal/services"
	"github.com/mrlokans/recruiter/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Candidate persistence
var _ importers.Store = (*candidates.Repository)(nil)
var _ http.CandidateStore = (*candidates.Repository)(nil)

// Import batch history
var _ services.BatchStore = (*imports.Repository)(nil)
var _ http.ImportHistory = (*imports.Repository)(nil)

// =============================================================================
// Import Commit
// =============================================================================

var _ http.ImportCommitter = (*services.ImportService)(nil)
var _ tasks.BatchApplier = (*services.ImportService)(nil)
var _ services.ReportArchiver = (*audit.Archiver)(nil)

// =============================================================================
// Audit Log
// =============================================================================

var _ services.ImportAuditor = (*audit.Service)(nil)
var _ http.CandidateAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.MaintenanceRecorder = (*audit.Service)(nil)
var _ scheduler.AuditCleaner = (*audit.Service)(nil)
var _ scheduler.MaintenanceLogger = (*audit.Service)(nil)

// =============================================================================
// Task Queue and Scheduling
// =============================================================================

var _ http.ImportEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ scheduler.AuditCleanupEnqueuer = (*tasks.Client)(nil)
var _ scheduler.SessionSweeper = (*importers.SessionStore)(nil)
