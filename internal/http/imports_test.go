package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recruiter/internal/database/imports"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

const inscricoesCSV = "Carimbo de data/hora,Nome completo,E-mail,Cidade\n" +
	"01/03/2024 09:00:00,Ana Souza,ana@example.com,poa\n" +
	"01/03/2024 10:00:00,Bruno Lima,bruno@example.com,canoas\n" +
	"01/03/2024 11:00:00,,sem-nome@example.com,canoas\n"

type mockCommitter struct {
	mu        sync.Mutex
	nextID    uint
	committed []*importers.Result
	recorded  []*importers.Result
	applied   []uint
	attached  map[uint]string
	commitErr error
}

func (m *mockCommitter) Record(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.recorded = append(m.recorded, result)
	return &entities.ImportBatch{ID: m.nextID, SourceFile: sourceFile, Status: entities.ImportStatusPending}, nil
}

func (m *mockCommitter) AttachTask(batchID uint, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attached == nil {
		m.attached = map[uint]string{}
	}
	m.attached[batchID] = taskID
	return nil
}

func (m *mockCommitter) Commit(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, importers.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.commitErr != nil {
		return nil, importers.Outcome{}, m.commitErr
	}
	m.nextID++
	m.committed = append(m.committed, result)
	return &entities.ImportBatch{ID: m.nextID, SourceFile: sourceFile}, importers.Outcome{Created: result.Accepted()}, nil
}

func (m *mockCommitter) ApplyBatch(batchID uint, sourceFile string, result *importers.Result) (importers.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, batchID)
	return importers.Outcome{Created: result.Accepted()}, nil
}

type mockEnqueuer struct {
	taskID string
	err    error
	calls  int
}

func (m *mockEnqueuer) EnqueueImport(ctx context.Context, batchID uint, sourceFile string, result *importers.Result) (string, error) {
	m.calls++
	return m.taskID, m.err
}

type mockHistory struct {
	batches []entities.ImportBatch
}

func (m *mockHistory) List(limit, offset int) ([]entities.ImportBatch, int64, error) {
	return m.batches, int64(len(m.batches)), nil
}

func (m *mockHistory) GetByID(id uint) (*entities.ImportBatch, error) {
	for i := range m.batches {
		if m.batches[i].ID == id {
			return &m.batches[i], nil
		}
	}
	return nil, imports.ErrNotFound
}

type importsFixture struct {
	router    *gin.Engine
	sessions  *importers.SessionStore
	committer *mockCommitter
}

func setupImportsRouter(t *testing.T, cfg RouterConfig) *importsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.Sessions == nil {
		cfg.Sessions = importers.NewSessionStore(100)
	}
	committer, _ := cfg.ImportCommitter.(*mockCommitter)
	if cfg.ImportCommitter == nil {
		committer = &mockCommitter{}
		cfg.ImportCommitter = committer
	}

	return &importsFixture{
		router:    NewRouter(cfg),
		sessions:  cfg.Sessions,
		committer: committer,
	}
}

func uploadFile(t *testing.T, router *gin.Engine, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) SessionView {
	t.Helper()
	var view SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func (f *importsFixture) startSession(t *testing.T) SessionView {
	t.Helper()
	w := uploadFile(t, f.router, "inscricoes.csv", inscricoesCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeView(t, w)
}

func TestImportsController_Upload(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})

	w := uploadFile(t, f.router, "inscricoes.csv", inscricoesCSV)

	require.Equal(t, http.StatusCreated, w.Code)
	view := decodeView(t, w)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, importers.StageMap, view.Stage)
	assert.Equal(t, "inscricoes.csv", view.FileName)
	assert.Equal(t, []string{"Carimbo de data/hora", "Nome completo", "E-mail", "Cidade"}, view.Headers)
	assert.Equal(t, 3, view.TotalRows)
	assert.Equal(t, importers.FieldFullName, view.Mapping["Nome completo"])
	assert.Equal(t, importers.FieldEmail, view.Mapping["E-mail"])
	assert.Equal(t, importers.FieldCity, view.Mapping["Cidade"])
	assert.Empty(t, view.MissingRequired)
	assert.Equal(t, importers.PolicySkip, view.Policy)
	assert.Len(t, view.Preview, 3)
	assert.NotEmpty(t, view.Fields)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestImportsController_UploadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		f := setupImportsRouter(t, RouterConfig{})

		req, _ := http.NewRequest("POST", "/api/imports", nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("xlsx input", func(t *testing.T) {
		f := setupImportsRouter(t, RouterConfig{})

		w := uploadFile(t, f.router, "planilha.xlsx", "PK\x03\x04")

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Equal(t, "unsupported_format", decodeError(t, w).Code)
		assert.Zero(t, f.sessions.Len())
	})

	t.Run("header only", func(t *testing.T) {
		f := setupImportsRouter(t, RouterConfig{})

		w := uploadFile(t, f.router, "vazio.csv", "Nome,E-mail\n")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "no_data_rows", decodeError(t, w).Code)
		assert.Zero(t, f.sessions.Len())
	})

	t.Run("too large", func(t *testing.T) {
		f := setupImportsRouter(t, RouterConfig{MaxUploadBytes: 64})

		w := uploadFile(t, f.router, "inscricoes.csv", inscricoesCSV+strings.Repeat("x", 256))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "file_too_large", decodeError(t, w).Code)
	})
}

func TestImportsController_FullWizard(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "GET", "/api/imports/sessions/"+view.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importers.StageMap, decodeView(t, w).Stage)

	w = doJSON(f.router, "PUT", "/api/imports/"+view.ID+"/mapping", `{"mapping": {"Carimbo de data/hora": ""}, "confirm": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decodeView(t, w)
	assert.Equal(t, importers.StageConfigure, view.Stage)
	assert.NotContains(t, view.Mapping, "Carimbo de data/hora")

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{"policy": "Overwrite", "import_tag": "lote-marco"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = decodeView(t, w)
	assert.Equal(t, importers.PolicyOverwrite, view.Policy)
	assert.Equal(t, "lote-marco", view.ImportTag)

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CommitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.BatchID)
	assert.Equal(t, "lote-marco", resp.ImportTag)
	assert.Equal(t, importers.PolicyOverwrite, resp.Policy)
	assert.Equal(t, 2, resp.Accepted)
	assert.Equal(t, 1, resp.Rejected)
	assert.Equal(t, 2, resp.Created)
	assert.False(t, resp.Queued)

	require.Len(t, f.committer.committed, 1)
	records := f.committer.committed[0].Records
	assert.Equal(t, "Porto Alegre/RS", records[0].City)
	assert.Equal(t, "lote-marco", records[1].ImportTag)

	// The session is gone once committed.
	w = doJSON(f.router, "GET", "/api/imports/sessions/"+view.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", decodeError(t, w).Code)
}

func TestImportsController_ConfigureFromMapStage(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	view = decodeView(t, w)
	assert.Equal(t, importers.StageConfigure, view.Stage)
	assert.Equal(t, importers.PolicySkip, view.Policy)
}

func TestImportsController_ConfigureUnknownPolicy(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{"policy": "merge"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "unknown_policy", resp.Code)
	assert.Equal(t, map[string]any{"policies": []any{"skip", "overwrite", "duplicate"}}, resp.Details)
}

func TestImportsController_MappingErrors(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "PUT", "/api/imports/"+view.ID+"/mapping", `{"mapping": {"Telefone": "phone"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_header", decodeError(t, w).Code)

	w = doJSON(f.router, "PUT", "/api/imports/"+view.ID+"/mapping", `{"mapping": {"Cidade": "shoeSize"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_field", decodeError(t, w).Code)

	w = doJSON(f.router, "PUT", "/api/imports/nope/mapping", `{"mapping": {}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportsController_CommitMissingRequiredMapping(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "PUT", "/api/imports/"+view.ID+"/mapping", `{"mapping": {"E-mail": ""}, "confirm": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []importers.Field{importers.FieldEmail}, decodeView(t, w).MissingRequired)

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "missing_required_mapping", resp.Code)
	assert.Equal(t, map[string]any{"missing": []any{"email"}}, resp.Details)
	assert.Empty(t, f.committer.committed)

	// The session survives so the operator can fix the mapping.
	w = doJSON(f.router, "GET", "/api/imports/sessions/"+view.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importers.StageConfigure, decodeView(t, w).Stage)
}

func TestImportsController_CommitBeforeConfigure(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, w).Code)
}

func TestImportsController_LargeImportNeedsConfirmation(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{Sessions: importers.NewSessionStore(2)})
	view := f.startSession(t)
	assert.True(t, view.LargeImport)
	assert.Equal(t, 2, view.LargeThreshold)

	w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{"policy": "skip"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "large_import_not_confirmed", decodeError(t, w).Code)

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{"policy": "skip", "confirm_large": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeView(t, w).ConfirmedLarge)

	w = doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImportsController_CommitStoreFailure(t *testing.T) {
	committer := &mockCommitter{commitErr: errors.New("database is locked")}
	f := setupImportsRouter(t, RouterConfig{ImportCommitter: committer})
	view := f.startSession(t)

	doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{}`)
	w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, f.sessions.Len())
}

func TestImportsController_AsyncCommit(t *testing.T) {
	t.Run("queues above the threshold", func(t *testing.T) {
		enqueuer := &mockEnqueuer{taskID: "task-1"}
		f := setupImportsRouter(t, RouterConfig{Enqueuer: enqueuer, AsyncThreshold: 1})
		view := f.startSession(t)

		doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{}`)
		w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		var resp struct {
			Message string         `json:"message"`
			Data    CommitResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "import queued", resp.Message)
		assert.True(t, resp.Data.Queued)
		assert.Equal(t, "task-1", resp.Data.TaskID)
		assert.Equal(t, uint(1), resp.Data.BatchID)

		assert.Len(t, f.committer.recorded, 1)
		assert.Empty(t, f.committer.committed)
		assert.Empty(t, f.committer.applied)
		assert.Equal(t, "task-1", f.committer.attached[1])
	})

	t.Run("stays inline at or below the threshold", func(t *testing.T) {
		enqueuer := &mockEnqueuer{taskID: "task-1"}
		f := setupImportsRouter(t, RouterConfig{Enqueuer: enqueuer, AsyncThreshold: 2})
		view := f.startSession(t)

		doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{}`)
		w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, enqueuer.calls)
		assert.Len(t, f.committer.committed, 1)
	})

	t.Run("applies inline when the queue is unavailable", func(t *testing.T) {
		enqueuer := &mockEnqueuer{err: errors.New("queue closed")}
		f := setupImportsRouter(t, RouterConfig{Enqueuer: enqueuer, AsyncThreshold: 1})
		view := f.startSession(t)

		doJSON(f.router, "POST", "/api/imports/"+view.ID+"/configure", `{}`)
		w := doJSON(f.router, "POST", "/api/imports/"+view.ID+"/commit", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp CommitResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Queued)
		assert.Equal(t, 2, resp.Created)
		assert.Equal(t, []uint{1}, f.committer.applied)
	})
}

func TestImportsController_Abandon(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})
	view := f.startSession(t)

	w := doJSON(f.router, "DELETE", "/api/imports/"+view.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.sessions.Len())
	assert.Empty(t, f.committer.committed)

	w = doJSON(f.router, "DELETE", "/api/imports/"+view.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportsController_Template(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})

	t.Run("csv by default", func(t *testing.T) {
		w := doJSON(f.router, "GET", "/api/imports/template", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "modelo_importacao_candidatos.csv")
		firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
		assert.Contains(t, firstLine, "E-mail")
	})

	t.Run("xlsx", func(t *testing.T) {
		w := doJSON(f.router, "GET", "/api/imports/template?format=xlsx", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "modelo_importacao_candidatos.xlsx")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
	})

	t.Run("unknown format", func(t *testing.T) {
		w := doJSON(f.router, "GET", "/api/imports/template?format=pdf", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportsController_History(t *testing.T) {
	ended := time.Date(2024, 3, 1, 9, 20, 0, 0, time.UTC)
	history := &mockHistory{batches: []entities.ImportBatch{
		{ID: 2, SourceFile: "lista.csv", Status: entities.ImportStatusCompleted, Created: 4, EndedAt: &ended},
		{ID: 1, SourceFile: "inscricoes.csv", Status: entities.ImportStatusFailed},
	}}
	f := setupImportsRouter(t, RouterConfig{ImportHistory: history})

	w := doJSON(f.router, "GET", "/api/imports/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data  []entities.ImportBatch `json:"data"`
		Total int64                  `json:"total"`
		Limit int                    `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 20, page.Limit)

	w = doJSON(f.router, "GET", "/api/imports/history/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lista.csv")

	w = doJSON(f.router, "GET", "/api/imports/history/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportsController_HistoryDisabled(t *testing.T) {
	f := setupImportsRouter(t, RouterConfig{})

	w := doJSON(f.router, "GET", "/api/imports/history", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
