// Package imports stores the history of committed import batches.
package imports

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

var ErrNotFound = errors.New("import batch not found")

const maxErrorLen = 2000

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Begin records a pending batch for a reconciled result.
func (r *Repository) Begin(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error) {
	batch := &entities.ImportBatch{
		ImportTag:  result.ImportTag,
		SourceFile: sourceFile,
		Policy:     string(result.Policy),
		Status:     entities.ImportStatusPending,
		TotalRows:  result.Accepted() + result.Rejected,
		Rejected:   result.Rejected,
		StartedAt:  time.Now(),
	}
	if table != nil {
		batch.DroppedRaw = table.Dropped
	}
	if err := r.db.Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// MarkRunning flags a batch as being applied.
func (r *Repository) MarkRunning(id uint) error {
	return r.update(id, map[string]any{"status": entities.ImportStatusRunning})
}

// AttachTask stores the id of the queued task applying the batch.
func (r *Repository) AttachTask(id uint, taskID string) error {
	return r.update(id, map[string]any{"task_id": taskID})
}

// Complete stores the outcome of a batch.
func (r *Repository) Complete(id uint, outcome importers.Outcome) error {
	return r.update(id, map[string]any{
		"status":   entities.ImportStatusCompleted,
		"created":  outcome.Created,
		"updated":  outcome.Updated,
		"skipped":  outcome.Skipped,
		"ended_at": time.Now(),
	})
}

// Fail marks a batch as failed with the cause.
func (r *Repository) Fail(id uint, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
		if len(msg) > maxErrorLen {
			msg = msg[:maxErrorLen]
		}
	}
	return r.update(id, map[string]any{
		"status":   entities.ImportStatusFailed,
		"errors":   msg,
		"ended_at": time.Now(),
	})
}

func (r *Repository) update(id uint, fields map[string]any) error {
	result := r.db.Model(&entities.ImportBatch{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(id uint) (*entities.ImportBatch, error) {
	var batch entities.ImportBatch
	err := r.db.First(&batch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// List returns batches newest first with the total count.
func (r *Repository) List(limit, offset int) ([]entities.ImportBatch, int64, error) {
	var total int64
	if err := r.db.Model(&entities.ImportBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var batches []entities.ImportBatch
	err := r.db.Order("started_at DESC, id DESC").Limit(limit).Offset(offset).Find(&batches).Error
	return batches, total, err
}
