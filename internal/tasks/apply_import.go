package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// BatchApplier applies a recorded import batch.
type BatchApplier interface {
	ApplyBatch(batchID uint, sourceFile string, result *importers.Result) (importers.Outcome, error)
}

// ApplyImportTask applies a reconciled import batch in the background. The
// reconciled records travel with the task so the wizard session can be
// released as soon as the batch is queued.
type ApplyImportTask struct {
	BatchID    uint                 `json:"batch_id"`
	SourceFile string               `json:"source_file"`
	ImportTag  string               `json:"import_tag"`
	Policy     importers.Policy     `json:"policy"`
	Rejected   int                  `json:"rejected"`
	Records    []entities.Candidate `json:"records"`
}

// NewApplyImportTask builds the task payload for a recorded batch.
func NewApplyImportTask(batchID uint, sourceFile string, result *importers.Result) ApplyImportTask {
	return ApplyImportTask{
		BatchID:    batchID,
		SourceFile: sourceFile,
		ImportTag:  result.ImportTag,
		Policy:     result.Policy,
		Rejected:   result.Rejected,
		Records:    result.Records,
	}
}

// Result rebuilds the reconciled result carried by the task.
func (t ApplyImportTask) Result() *importers.Result {
	return &importers.Result{
		Records:   t.Records,
		Rejected:  t.Rejected,
		Policy:    t.Policy,
		ImportTag: t.ImportTag,
	}
}

// Config returns the queue configuration for import tasks. Applying is not
// idempotent under the duplicate policy, so it runs once.
func (t ApplyImportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "apply_import",
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ApplyImportProcessor creates a processor function for ApplyImportTask.
func ApplyImportProcessor(applier BatchApplier) backlite.QueueProcessor[ApplyImportTask] {
	return func(ctx context.Context, task ApplyImportTask) error {
		if applier == nil {
			return fmt.Errorf("import applier not configured")
		}

		outcome, err := applier.ApplyBatch(task.BatchID, task.SourceFile, task.Result())
		if err != nil {
			return fmt.Errorf("apply import batch %d: %w", task.BatchID, err)
		}

		log.Printf("[TASK] Applied import batch %d (%s): %d created, %d updated, %d skipped",
			task.BatchID, task.ImportTag, outcome.Created, outcome.Updated, outcome.Skipped)
		return nil
	}
}

// NewApplyImportQueue creates a backlite queue for import tasks.
func NewApplyImportQueue(applier BatchApplier) backlite.Queue {
	return backlite.NewQueue(ApplyImportProcessor(applier))
}
