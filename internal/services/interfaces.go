package services

import (
	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// CandidateStore persists reconciled candidates under a duplicate policy.
type CandidateStore = importers.Store

// BatchStore tracks the lifecycle of committed import batches.
type BatchStore interface {
	Begin(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error)
	MarkRunning(id uint) error
	AttachTask(id uint, taskID string) error
	Complete(id uint, outcome importers.Outcome) error
	Fail(id uint, cause error) error
}

// ImportAuditor records committed imports in the audit log.
type ImportAuditor interface {
	LogImport(summary audit.ImportSummary, err error)
}

// ReportArchiver keeps a copy of every import report.
type ReportArchiver interface {
	Save(prefix string, data any) (string, error)
}
