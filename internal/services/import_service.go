package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// BatchReport is the archived summary of one applied batch.
type BatchReport struct {
	BatchID    uint              `json:"batch_id"`
	SourceFile string            `json:"source_file"`
	ImportTag  string            `json:"import_tag"`
	Policy     importers.Policy  `json:"policy"`
	Accepted   int               `json:"accepted"`
	Rejected   int               `json:"rejected"`
	Outcome    importers.Outcome `json:"outcome"`
	Error      string            `json:"error,omitempty"`
}

// ImportService commits reconciled imports: it records the batch, applies
// it to the candidate store and leaves an audit trail. The HTTP wizard, the
// apply_import task and the CLI all go through it.
type ImportService struct {
	store    CandidateStore
	batches  BatchStore
	auditor  ImportAuditor
	archiver ReportArchiver
}

// NewImportService creates a new ImportService. auditor and archiver are optional.
func NewImportService(store CandidateStore, batches BatchStore, auditor ImportAuditor, archiver ReportArchiver) *ImportService {
	return &ImportService{
		store:    store,
		batches:  batches,
		auditor:  auditor,
		archiver: archiver,
	}
}

// Record stores a pending batch for result without applying it.
func (s *ImportService) Record(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error) {
	if result == nil || len(result.Records) == 0 {
		return nil, importers.ErrNoValidCandidates
	}
	batch, err := s.batches.Begin(result, sourceFile, table)
	if err != nil {
		return nil, fmt.Errorf("failed to record import batch: %w", err)
	}
	return batch, nil
}

// AttachTask links a recorded batch to the task that will apply it.
func (s *ImportService) AttachTask(batchID uint, taskID string) error {
	return s.batches.AttachTask(batchID, taskID)
}

// Commit records and applies result synchronously.
func (s *ImportService) Commit(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, importers.Outcome, error) {
	batch, err := s.Record(result, sourceFile, table)
	if err != nil {
		return nil, importers.Outcome{}, err
	}

	outcome, err := s.ApplyBatch(batch.ID, sourceFile, result)
	return batch, outcome, err
}

// ApplyBatch applies a recorded batch and stores its outcome.
func (s *ImportService) ApplyBatch(batchID uint, sourceFile string, result *importers.Result) (importers.Outcome, error) {
	if result == nil {
		return importers.Outcome{}, errors.New("nil import result")
	}
	if err := s.batches.MarkRunning(batchID); err != nil {
		return importers.Outcome{}, fmt.Errorf("failed to start import batch %d: %w", batchID, err)
	}

	log.Printf("[IMPORT] Applying batch %d (%s): %d records, policy %s", batchID, sourceFile, len(result.Records), result.Policy)

	outcome, applyErr := s.store.ApplyImport(result.Records, result.Policy)
	if applyErr != nil {
		if err := s.batches.Fail(batchID, applyErr); err != nil {
			log.Printf("[IMPORT] Failed to mark batch %d as failed: %v", batchID, err)
		}
	} else if err := s.batches.Complete(batchID, outcome); err != nil {
		log.Printf("[IMPORT] Failed to complete batch %d: %v", batchID, err)
	}

	if s.auditor != nil {
		s.auditor.LogImport(audit.ImportSummary{
			BatchID:    batchID,
			SourceFile: sourceFile,
			ImportTag:  result.ImportTag,
			Policy:     result.Policy,
			Rejected:   result.Rejected,
			Outcome:    outcome,
		}, applyErr)
	}
	s.archive(batchID, sourceFile, result, outcome, applyErr)

	if applyErr != nil {
		return importers.Outcome{}, fmt.Errorf("failed to apply import batch %d: %w", batchID, applyErr)
	}

	log.Printf("[IMPORT] Batch %d done: %d created, %d updated, %d skipped, %d rejected",
		batchID, outcome.Created, outcome.Updated, outcome.Skipped, result.Rejected)
	return outcome, nil
}

func (s *ImportService) archive(batchID uint, sourceFile string, result *importers.Result, outcome importers.Outcome, applyErr error) {
	if s.archiver == nil {
		return
	}
	report := BatchReport{
		BatchID:    batchID,
		SourceFile: sourceFile,
		ImportTag:  result.ImportTag,
		Policy:     result.Policy,
		Accepted:   result.Accepted(),
		Rejected:   result.Rejected,
		Outcome:    outcome,
	}
	if applyErr != nil {
		report.Error = applyErr.Error()
	}
	if _, err := s.archiver.Save(result.ImportTag, report); err != nil {
		log.Printf("[IMPORT] Failed to archive report for batch %d: %v", batchID, err)
	}
}
