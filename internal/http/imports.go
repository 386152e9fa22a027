package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recruiter/internal/database/imports"
	"github.com/mrlokans/recruiter/internal/importers"
)

const previewRows = 5

// ImportsController drives the interactive spreadsheet import:
// upload → map → configure → commit.
type ImportsController struct {
	sessions       *importers.SessionStore
	committer      ImportCommitter
	history        ImportHistory
	enqueuer       ImportEnqueuer
	asyncThreshold int
	maxUploadBytes int64
	now            func() time.Time
}

func NewImportsController(cfg RouterConfig) *ImportsController {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}
	return &ImportsController{
		sessions:       cfg.Sessions,
		committer:      cfg.ImportCommitter,
		history:        cfg.ImportHistory,
		enqueuer:       cfg.Enqueuer,
		asyncThreshold: cfg.AsyncThreshold,
		maxUploadBytes: maxUpload,
		now:            time.Now,
	}
}

// SessionView is the wizard state returned by every step.
type SessionView struct {
	ID              string                 `json:"id"`
	Stage           importers.Stage        `json:"stage"`
	FileName        string                 `json:"file_name,omitempty"`
	Headers         []string               `json:"headers"`
	TotalRows       int                    `json:"total_rows"`
	DroppedRows     int                    `json:"dropped_rows"`
	LargeImport     bool                   `json:"large_import"`
	LargeThreshold  int                    `json:"large_threshold"`
	Mapping         importers.Mapping      `json:"mapping"`
	MissingRequired []importers.Field      `json:"missing_required"`
	Policy          importers.Policy       `json:"policy"`
	ImportTag       string                 `json:"import_tag,omitempty"`
	ConfirmedLarge  bool                   `json:"confirmed_large"`
	Preview         []importers.Row        `json:"preview"`
	Fields          []importers.FieldLabel `json:"fields"`
}

func newSessionView(id string, w *importers.Workflow) SessionView {
	view := SessionView{
		ID:              id,
		Stage:           w.Stage(),
		FileName:        w.FileName(),
		Headers:         []string{},
		LargeImport:     w.IsLarge(),
		LargeThreshold:  w.LargeThreshold(),
		Mapping:         w.Mapping(),
		MissingRequired: []importers.Field{},
		Policy:          w.Policy(),
		ImportTag:       w.ImportTag(),
		ConfirmedLarge:  w.LargeConfirmed(),
		Preview:         []importers.Row{},
		Fields:          importers.FieldLabels,
	}
	if view.Mapping == nil {
		view.Mapping = importers.Mapping{}
	}
	if missing := view.Mapping.MissingRequired(); missing != nil {
		view.MissingRequired = missing
	}
	if table := w.Table(); table != nil {
		view.Headers = table.Headers
		view.TotalRows = table.Len()
		view.DroppedRows = table.Dropped
		n := min(previewRows, len(table.Rows))
		view.Preview = table.Rows[:n]
	}
	return view
}

// Upload handles POST /api/imports with a multipart "file" field. It
// creates a session, parses the file and proposes a mapping.
func (ic *ImportsController) Upload(c *gin.Context) {
	if c.Request.ContentLength > ic.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file is too large", Code: "file_too_large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ic.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file is too large", Code: "file_too_large"})
			return
		}
		respondBadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "open upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondInternalError(c, err, "read upload")
		return
	}

	sess := ic.sessions.Create()
	var view SessionView
	err = sess.Do(func(w *importers.Workflow) error {
		if _, err := w.Upload(fileHeader.Filename, data); err != nil {
			return err
		}
		view = newSessionView(sess.ID, w)
		return nil
	})
	if err != nil {
		ic.sessions.Delete(sess.ID)
		respondImportError(c, err, nil)
		return
	}

	log.Printf("[IMPORT] Session %s: %s uploaded, %d rows, %d headers", sess.ID, fileHeader.Filename, view.TotalRows, len(view.Headers))
	respondCreated(c, view)
}

// Get handles GET /api/imports/sessions/:id
func (ic *ImportsController) Get(c *gin.Context) {
	ic.withSession(c, func(id string, w *importers.Workflow) (any, error) {
		return newSessionView(id, w), nil
	})
}

// MappingRequest overrides the field of each listed header. An empty field
// ignores the header. Confirm moves the wizard on to configure.
type MappingRequest struct {
	Mapping map[string]importers.Field `json:"mapping"`
	Confirm bool                       `json:"confirm"`
}

// UpdateMapping handles PUT /api/imports/:id/mapping
func (ic *ImportsController) UpdateMapping(c *gin.Context) {
	var req MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ic.withSession(c, func(id string, w *importers.Workflow) (any, error) {
		overrides := importers.Mapping(req.Mapping)
		for _, h := range overrides.Headers() {
			if err := w.SetMapping(h, overrides[h]); err != nil {
				return nil, err
			}
		}
		if req.Confirm && w.Stage() == importers.StageMap {
			if err := w.ConfirmMapping(); err != nil {
				return nil, err
			}
		}
		return newSessionView(id, w), nil
	})
}

// ConfigureRequest holds the commit options.
type ConfigureRequest struct {
	Policy       string `json:"policy"`
	ImportTag    string `json:"import_tag"`
	ConfirmLarge bool   `json:"confirm_large"`
}

// Configure handles POST /api/imports/:id/configure. A session still in the
// map stage confirms its mapping first.
func (ic *ImportsController) Configure(c *gin.Context) {
	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	policy, err := importers.ParsePolicy(req.Policy)
	if err != nil {
		respondImportError(c, err, gin.H{"policies": importers.Policies()})
		return
	}

	ic.withSession(c, func(id string, w *importers.Workflow) (any, error) {
		if w.Stage() == importers.StageMap {
			if err := w.ConfirmMapping(); err != nil {
				return nil, err
			}
		}
		if err := w.Configure(policy, req.ImportTag, req.ConfirmLarge); err != nil {
			return nil, err
		}
		return newSessionView(id, w), nil
	})
}

// CommitResponse summarizes a committed import.
type CommitResponse struct {
	BatchID   uint             `json:"batch_id"`
	ImportTag string           `json:"import_tag"`
	Policy    importers.Policy `json:"policy"`
	Accepted  int              `json:"accepted"`
	Rejected  int              `json:"rejected"`
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Skipped   int              `json:"skipped"`
	TaskID    string           `json:"task_id,omitempty"`
	Queued    bool             `json:"queued"`
}

// Commit handles POST /api/imports/:id/commit. The session ends once the
// batch reaches the store, whether it succeeded or not; the batch history
// keeps the outcome.
func (ic *ImportsController) Commit(c *gin.Context) {
	sess, err := ic.sessions.Get(c.Param("id"))
	if err != nil {
		respondImportError(c, err, nil)
		return
	}

	var (
		result   *importers.Result
		table    *importers.Table
		fileName string
		missing  []importers.Field
	)
	err = sess.Do(func(w *importers.Workflow) error {
		r, err := w.Commit(ic.now())
		if err != nil {
			missing = w.Mapping().MissingRequired()
			return err
		}
		result, table, fileName = r, w.Table(), w.FileName()
		return nil
	})
	if err != nil {
		var details any
		if errors.Is(err, importers.ErrMissingRequiredMapping) {
			details = gin.H{"missing": missing}
		}
		respondImportError(c, err, details)
		return
	}
	defer ic.sessions.Delete(sess.ID)

	resp := CommitResponse{
		ImportTag: result.ImportTag,
		Policy:    result.Policy,
		Accepted:  result.Accepted(),
		Rejected:  result.Rejected,
	}

	if ic.enqueuer != nil && ic.asyncThreshold > 0 && result.Accepted() > ic.asyncThreshold {
		batch, err := ic.committer.Record(result, fileName, table)
		if err != nil {
			respondImportError(c, err, nil)
			return
		}
		resp.BatchID = batch.ID

		taskID, err := ic.enqueue(c.Request.Context(), batch.ID, fileName, result)
		if err == nil {
			resp.TaskID = taskID
			resp.Queued = true
			respondAccepted(c, "import queued", resp)
			return
		}

		log.Printf("[IMPORT] Queueing batch %d failed, applying inline: %v", batch.ID, err)
		outcome, err := ic.committer.ApplyBatch(batch.ID, fileName, result)
		if err != nil {
			respondInternalError(c, err, "apply import")
			return
		}
		resp.Created, resp.Updated, resp.Skipped = outcome.Created, outcome.Updated, outcome.Skipped
		c.JSON(http.StatusOK, resp)
		return
	}

	batch, outcome, err := ic.committer.Commit(result, fileName, table)
	if err != nil {
		respondInternalError(c, err, "commit import")
		return
	}
	resp.BatchID = batch.ID
	resp.Created, resp.Updated, resp.Skipped = outcome.Created, outcome.Updated, outcome.Skipped
	c.JSON(http.StatusOK, resp)
}

func (ic *ImportsController) enqueue(ctx context.Context, batchID uint, fileName string, result *importers.Result) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	taskID, err := ic.enqueuer.EnqueueImport(ctx, batchID, fileName, result)
	if err != nil {
		return "", err
	}
	if err := ic.committer.AttachTask(batchID, taskID); err != nil {
		log.Printf("[IMPORT] Failed to attach task %s to batch %d: %v", taskID, batchID, err)
	}
	return taskID, nil
}

// Abandon handles DELETE /api/imports/:id. Nothing is persisted for an
// abandoned session.
func (ic *ImportsController) Abandon(c *gin.Context) {
	if !ic.sessions.Delete(c.Param("id")) {
		respondImportError(c, importers.ErrSessionNotFound, nil)
		return
	}
	respondSuccess(c, "import abandoned")
}

// Template handles GET /api/imports/template?format=csv|xlsx
func (ic *ImportsController) Template(c *gin.Context) {
	format := importers.TemplateFormat(c.DefaultQuery("format", string(importers.TemplateCSV)))
	if format != importers.TemplateCSV && format != importers.TemplateXLSX {
		respondBadRequest(c, "format must be csv or xlsx")
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	c.Status(http.StatusOK)
	if err := importers.WriteTemplate(c.Writer, format); err != nil {
		log.Printf("[IMPORT] Failed to write %s template: %v", format, err)
	}
}

// History handles GET /api/imports/history
func (ic *ImportsController) History(c *gin.Context) {
	limit, offset := parsePagination(c, 20, 200)

	batches, total, err := ic.history.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list import history")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(batches, total, limit, offset))
}

// Batch handles GET /api/imports/history/:id
func (ic *ImportsController) Batch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	batch, err := ic.history.GetByID(id)
	if errors.Is(err, imports.ErrNotFound) {
		respondNotFound(c, "import batch")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get import batch")
		return
	}
	c.JSON(http.StatusOK, batch)
}

// withSession runs step on the session named by the :id parameter and
// responds with its result.
func (ic *ImportsController) withSession(c *gin.Context, step func(id string, w *importers.Workflow) (any, error)) {
	sess, err := ic.sessions.Get(c.Param("id"))
	if err != nil {
		respondImportError(c, err, nil)
		return
	}

	var body any
	err = sess.Do(func(w *importers.Workflow) error {
		var err error
		body, err = step(sess.ID, w)
		return err
	})
	if err != nil {
		respondImportError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, body)
}
