package importers

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition       = errors.New("import step is not allowed in the current stage")
	ErrLargeImportNotConfirmed = errors.New("large import must be confirmed before commit")
	ErrUnknownHeader           = errors.New("header is not present in the uploaded file")
)

// Stage is a step of the interactive import.
type Stage string

const (
	StageUpload    Stage = "upload"
	StageMap       Stage = "map"
	StageConfigure Stage = "configure"
	StageCommit    Stage = "commit"
)

// Workflow tracks one import from upload to commit. Stages only move
// forward. A failed step leaves the workflow where it was so the operator
// can repeat it; Reset starts over with a fresh upload.
//
// A Workflow is not safe for concurrent use; Session serializes access.
type Workflow struct {
	stage          Stage
	fileName       string
	table          *Table
	mapping        Mapping
	policy         Policy
	importTag      string
	largeThreshold int
	largeConfirmed bool
	result         *Result
}

// NewWorkflow returns a workflow waiting for an upload. largeThreshold is
// the row count above which commit needs confirmation.
func NewWorkflow(largeThreshold int) *Workflow {
	if largeThreshold <= 0 {
		largeThreshold = DefaultLargeImportThreshold
	}
	return &Workflow{
		stage:          StageUpload,
		policy:         DefaultPolicy,
		largeThreshold: largeThreshold,
	}
}

func (w *Workflow) Stage() Stage         { return w.stage }
func (w *Workflow) FileName() string     { return w.fileName }
func (w *Workflow) Table() *Table        { return w.table }
func (w *Workflow) Policy() Policy       { return w.policy }
func (w *Workflow) ImportTag() string    { return w.importTag }
func (w *Workflow) Result() *Result      { return w.result }
func (w *Workflow) LargeConfirmed() bool { return w.largeConfirmed }

// Mapping returns a copy of the current mapping.
func (w *Workflow) Mapping() Mapping {
	return w.mapping.Clone()
}

// IsLarge reports whether the uploaded table needs confirmation before commit.
func (w *Workflow) IsLarge() bool {
	return w.table != nil && w.table.IsLarge(w.largeThreshold)
}

// LargeThreshold is the row count above which commit needs confirmation.
func (w *Workflow) LargeThreshold() int {
	return w.largeThreshold
}

func (w *Workflow) expect(stages ...Stage) error {
	for _, s := range stages {
		if w.stage == s {
			return nil
		}
	}
	return fmt.Errorf("%w: stage is %s", ErrInvalidTransition, w.stage)
}

// Upload parses the file and infers the initial mapping. On success the
// workflow moves to the map stage; on a parse error it stays in upload.
func (w *Workflow) Upload(fileName string, data []byte) (*Table, error) {
	if err := w.expect(StageUpload); err != nil {
		return nil, err
	}

	table, err := ParseFile(fileName, data)
	if err != nil {
		return nil, err
	}

	w.fileName = fileName
	w.table = table
	w.mapping = InferMapping(table.Headers)
	w.stage = StageMap
	return table, nil
}

// SetMapping overrides the field of one header. An empty field ignores the
// header. Mapping stays editable until commit.
func (w *Workflow) SetMapping(header string, field Field) error {
	if err := w.expect(StageMap, StageConfigure); err != nil {
		return err
	}
	if !w.table.HasHeader(header) {
		return fmt.Errorf("%w: %q", ErrUnknownHeader, header)
	}
	if field != "" {
		if _, err := ParseField(string(field)); err != nil {
			return err
		}
	}
	w.mapping.Set(header, field)
	return nil
}

// ConfirmMapping moves from map to configure.
func (w *Workflow) ConfirmMapping() error {
	if err := w.expect(StageMap); err != nil {
		return err
	}
	w.stage = StageConfigure
	return nil
}

// Configure records the policy, the custom import tag and the large import
// confirmation. It can be called repeatedly before commit.
func (w *Workflow) Configure(policy Policy, importTag string, confirmLarge bool) error {
	if err := w.expect(StageConfigure); err != nil {
		return err
	}
	if policy == "" {
		policy = DefaultPolicy
	}
	if !policy.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	w.policy = policy
	w.importTag = importTag
	w.largeConfirmed = confirmLarge
	return nil
}

// Commit reconciles the rows and moves to the commit stage. Missing required
// mappings, an unconfirmed large import and zero surviving records all keep
// the workflow in configure.
func (w *Workflow) Commit(now time.Time) (*Result, error) {
	if err := w.expect(StageConfigure); err != nil {
		return nil, err
	}
	if err := w.mapping.Validate(); err != nil {
		return nil, err
	}
	if w.IsLarge() && !w.largeConfirmed {
		return nil, fmt.Errorf("%w: %d rows", ErrLargeImportNotConfirmed, w.table.Len())
	}

	result, err := Reconcile(w.table.Rows, w.mapping, ReconcileOptions{
		Policy:     w.policy,
		ImportTag:  w.importTag,
		SourceFile: w.fileName,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}

	w.result = result
	w.stage = StageCommit
	return result, nil
}

// Reset discards the upload and everything derived from it.
func (w *Workflow) Reset() {
	*w = *NewWorkflow(w.largeThreshold)
}
