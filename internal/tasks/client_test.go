package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "recruiter-tasks.db"), TasksDBPath(filepath.Join("data", "recruiter.db")))
	assert.Equal(t, "recruiter-tasks", TasksDBPath("recruiter"))
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type recordingApplier struct {
	calls chan ApplyImportTask
	err   error
}

func (r *recordingApplier) ApplyBatch(batchID uint, sourceFile string, result *importers.Result) (importers.Outcome, error) {
	r.calls <- ApplyImportTask{
		BatchID:    batchID,
		SourceFile: sourceFile,
		ImportTag:  result.ImportTag,
		Policy:     result.Policy,
		Rejected:   result.Rejected,
		Records:    result.Records,
	}
	return importers.Outcome{Created: len(result.Records)}, r.err
}

func TestEnqueueImport(t *testing.T) {
	client := newTestClient(t)

	applier := &recordingApplier{calls: make(chan ApplyImportTask, 1)}
	client.Register(NewApplyImportQueue(applier))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	result := &importers.Result{
		Records: []entities.Candidate{
			{FullName: "Ana Souza", Email: "ana@example.com", City: "Porto Alegre/RS"},
		},
		Rejected:  2,
		Policy:    importers.PolicyDuplicate,
		ImportTag: "lote_20240301-091500",
	}

	taskID, err := client.EnqueueImport(ctx, 7, "lote.csv", result)
	require.NoError(t, err)
	assert.NotEmpty(t, taskID)

	select {
	case got := <-applier.calls:
		assert.Equal(t, uint(7), got.BatchID)
		assert.Equal(t, "lote.csv", got.SourceFile)
		assert.Equal(t, importers.PolicyDuplicate, got.Policy)
		assert.Equal(t, 2, got.Rejected)
		require.Len(t, got.Records, 1)
		assert.Equal(t, "Porto Alegre/RS", got.Records[0].City)
	case <-time.After(5 * time.Second):
		t.Fatal("import task was not executed within timeout")
	}
}

func TestApplyImportProcessor(t *testing.T) {
	t.Run("nil applier", func(t *testing.T) {
		err := ApplyImportProcessor(nil)(context.Background(), ApplyImportTask{BatchID: 1})
		assert.Error(t, err)
	})

	t.Run("applier error is wrapped", func(t *testing.T) {
		applier := &recordingApplier{calls: make(chan ApplyImportTask, 1), err: errors.New("locked")}
		err := ApplyImportProcessor(applier)(context.Background(), ApplyImportTask{BatchID: 3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 3")
		assert.Contains(t, err.Error(), "locked")
	})
}

func TestApplyImportTaskConfig(t *testing.T) {
	cfg := ApplyImportTask{}.Config()

	assert.Equal(t, "apply_import", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

type stubCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (s *stubCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	s.retention = retention
	return s.deleted, s.err
}

type stubRecorder struct {
	descriptions []string
	errs         []error
}

func (s *stubRecorder) LogMaintenance(action, description string, err error) {
	s.descriptions = append(s.descriptions, description)
	s.errs = append(s.errs, err)
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &stubCleaner{deleted: 4}
		recorder := &stubRecorder{}

		err := CleanupAuditEventsProcessor(cleaner, recorder)(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
		assert.Equal(t, []string{"Removed 4 audit events older than 7 days"}, recorder.descriptions)
	})

	t.Run("falls back to default retention", func(t *testing.T) {
		cleaner := &stubCleaner{}
		recorder := &stubRecorder{}

		err := CleanupAuditEventsProcessor(cleaner, recorder)(context.Background(), CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, DefaultAuditRetentionDays*24*time.Hour, cleaner.retention)
		assert.Empty(t, recorder.descriptions)
	})

	t.Run("records failures", func(t *testing.T) {
		cleaner := &stubCleaner{err: errors.New("database is locked")}
		recorder := &stubRecorder{}

		err := CleanupAuditEventsProcessor(cleaner, recorder)(context.Background(), CleanupAuditEventsTask{})
		require.Error(t, err)
		require.Len(t, recorder.errs, 1)
		assert.Error(t, recorder.errs[0])
	})

	t.Run("without a cleaner", func(t *testing.T) {
		err := CleanupAuditEventsProcessor(nil, nil)(context.Background(), CleanupAuditEventsTask{})
		assert.Error(t, err)
	})
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client := newTestClient(t)

	executed := make(chan string, 1)
	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	})
	client.Register(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(TestTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
