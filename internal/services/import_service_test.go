package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recruiter/internal/audit"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

type mockCandidateStore struct {
	outcome importers.Outcome
	err     error
	applied []entities.Candidate
}

func (m *mockCandidateStore) ApplyImport(records []entities.Candidate, policy importers.Policy) (importers.Outcome, error) {
	m.applied = append(m.applied, records...)
	return m.outcome, m.err
}

type mockBatchStore struct {
	nextID    uint
	begun     []*entities.ImportBatch
	running   []uint
	tasks     map[uint]string
	completed map[uint]importers.Outcome
	failed    map[uint]error
}

func newMockBatchStore() *mockBatchStore {
	return &mockBatchStore{
		tasks:     map[uint]string{},
		completed: map[uint]importers.Outcome{},
		failed:    map[uint]error{},
	}
}

func (m *mockBatchStore) Begin(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error) {
	m.nextID++
	batch := &entities.ImportBatch{ID: m.nextID, SourceFile: sourceFile, ImportTag: result.ImportTag}
	m.begun = append(m.begun, batch)
	return batch, nil
}

func (m *mockBatchStore) MarkRunning(id uint) error {
	m.running = append(m.running, id)
	return nil
}

func (m *mockBatchStore) AttachTask(id uint, taskID string) error {
	m.tasks[id] = taskID
	return nil
}

func (m *mockBatchStore) Complete(id uint, outcome importers.Outcome) error {
	m.completed[id] = outcome
	return nil
}

func (m *mockBatchStore) Fail(id uint, cause error) error {
	m.failed[id] = cause
	return nil
}

type mockAuditor struct {
	mu        sync.Mutex
	summaries []audit.ImportSummary
	errs      []error
}

func (m *mockAuditor) LogImport(summary audit.ImportSummary, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, summary)
	m.errs = append(m.errs, err)
}

type mockArchiver struct {
	reports []any
}

func (m *mockArchiver) Save(prefix string, data any) (string, error) {
	m.reports = append(m.reports, data)
	return prefix + ".json", nil
}

func sampleResult() *importers.Result {
	return &importers.Result{
		Records: []entities.Candidate{
			{FullName: "Ana", Email: "ana@example.com"},
			{FullName: "Bruno", Email: "bruno@example.com"},
		},
		Rejected:  1,
		Policy:    importers.PolicyOverwrite,
		ImportTag: "lote_20240301-091500",
	}
}

func TestImportService_Commit(t *testing.T) {
	store := &mockCandidateStore{outcome: importers.Outcome{Created: 1, Updated: 1}}
	batches := newMockBatchStore()
	auditor := &mockAuditor{}
	archiver := &mockArchiver{}
	svc := NewImportService(store, batches, auditor, archiver)

	batch, outcome, err := svc.Commit(sampleResult(), "lote.csv", nil)
	require.NoError(t, err)
	require.NotNil(t, batch)

	assert.Equal(t, importers.Outcome{Created: 1, Updated: 1}, outcome)
	assert.Len(t, store.applied, 2)
	assert.Equal(t, []uint{batch.ID}, batches.running)
	assert.Equal(t, outcome, batches.completed[batch.ID])
	assert.Empty(t, batches.failed)

	require.Len(t, auditor.summaries, 1)
	assert.Equal(t, batch.ID, auditor.summaries[0].BatchID)
	assert.Equal(t, 1, auditor.summaries[0].Rejected)
	assert.NoError(t, auditor.errs[0])

	require.Len(t, archiver.reports, 1)
	report := archiver.reports[0].(BatchReport)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, "lote_20240301-091500", report.ImportTag)
	assert.Empty(t, report.Error)
}

func TestImportService_CommitStoreFailure(t *testing.T) {
	store := &mockCandidateStore{err: errors.New("disk full")}
	batches := newMockBatchStore()
	auditor := &mockAuditor{}
	svc := NewImportService(store, batches, auditor, nil)

	batch, _, err := svc.Commit(sampleResult(), "lote.csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Contains(t, batches.failed, batch.ID)
	assert.Empty(t, batches.completed)
	require.Len(t, auditor.errs, 1)
	assert.Error(t, auditor.errs[0])
}

func TestImportService_RecordRejectsEmptyResult(t *testing.T) {
	svc := NewImportService(&mockCandidateStore{}, newMockBatchStore(), nil, nil)

	_, err := svc.Record(&importers.Result{}, "vazio.csv", nil)
	assert.ErrorIs(t, err, importers.ErrNoValidCandidates)

	_, err = svc.Record(nil, "vazio.csv", nil)
	assert.ErrorIs(t, err, importers.ErrNoValidCandidates)
}

func TestImportService_RecordThenApply(t *testing.T) {
	store := &mockCandidateStore{outcome: importers.Outcome{Created: 2}}
	batches := newMockBatchStore()
	svc := NewImportService(store, batches, nil, nil)

	result := sampleResult()
	batch, err := svc.Record(result, "lote.csv", &importers.Table{Dropped: 4})
	require.NoError(t, err)
	require.NoError(t, svc.AttachTask(batch.ID, "task-1"))

	assert.Empty(t, store.applied)
	assert.Equal(t, "task-1", batches.tasks[batch.ID])

	outcome, err := svc.ApplyBatch(batch.ID, "lote.csv", result)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Created)
	assert.Equal(t, outcome, batches.completed[batch.ID])
}
