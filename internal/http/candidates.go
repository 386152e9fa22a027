package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recruiter/internal/database/candidates"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// CandidatesController serves recruiter review of stored candidates and
// the public application form.
type CandidatesController struct {
	store   CandidateStore
	auditor CandidateAuditor
}

func NewCandidatesController(store CandidateStore, auditor CandidateAuditor) *CandidatesController {
	return &CandidatesController{store: store, auditor: auditor}
}

// List handles GET /api/candidates
func (cc *CandidatesController) List(c *gin.Context) {
	limit, offset := parsePagination(c, 50, 500)
	filter := candidates.ListFilter{
		Query:     strings.TrimSpace(c.Query("q")),
		City:      c.Query("city"),
		Source:    c.Query("source"),
		Status:    c.Query("status"),
		ImportTag: c.Query("import_tag"),
		Limit:     limit,
		Offset:    offset,
	}

	list, total, err := cc.store.List(filter)
	if err != nil {
		respondInternalError(c, err, "list candidates")
		return
	}
	if list == nil {
		list = []entities.Candidate{}
	}

	c.JSON(http.StatusOK, newPaginatedResponse(list, total, limit, offset))
}

// Get handles GET /api/candidates/:id
func (cc *CandidatesController) Get(c *gin.Context) {
	candidate, ok := cc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Update handles PATCH /api/candidates/:id. The body maps field identifiers
// to new values; catalog fields are normalized as on import.
func (cc *CandidatesController) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		respondBadRequest(c, "invalid request body: expected an object of field values")
		return
	}
	if len(values) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	candidate, ok := cc.load(c)
	if !ok {
		return
	}

	changed, err := importers.ApplyValues(candidate, values)
	if err != nil {
		respondImportError(c, err, nil)
		return
	}
	if candidate.FullName == "" || candidate.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "fullName and email cannot be empty",
			Code:  "missing_required_field",
		})
		return
	}

	if err := cc.store.Update(candidate); err != nil {
		respondInternalError(c, err, "update candidate")
		return
	}

	if cc.auditor != nil {
		names := make([]string, len(changed))
		for i, f := range changed {
			names[i] = string(f)
		}
		cc.auditor.LogUpdate(candidate.ID, candidate.FullName, names)
	}

	c.JSON(http.StatusOK, candidate)
}

// Delete handles DELETE /api/candidates/:id
func (cc *CandidatesController) Delete(c *gin.Context) {
	candidate, ok := cc.load(c)
	if !ok {
		return
	}

	if err := cc.store.Delete(candidate.ID); err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			respondNotFound(c, "candidate")
			return
		}
		respondInternalError(c, err, "delete candidate")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogDelete("candidate", candidate.ID, candidate.FullName)
	}

	respondSuccess(c, "candidate deleted")
}

// Apply handles POST /api/applications, the public application form.
func (cc *CandidatesController) Apply(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		respondBadRequest(c, "invalid request body: expected an object of field values")
		return
	}

	// Applicants cannot pick their own status or provenance.
	delete(values, string(importers.FieldStatus))

	candidate := &entities.Candidate{}
	if _, err := importers.ApplyValues(candidate, values); err != nil {
		respondImportError(c, err, nil)
		return
	}

	var missing []string
	for _, f := range importers.RequiredFields {
		if importers.GetField(candidate, f) == "" {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "required fields are missing",
			Code:    "missing_required_field",
			Details: gin.H{"fields": missing},
		})
		return
	}

	candidate.Status = entities.StatusRegistered
	if err := cc.store.Create(candidate); err != nil {
		respondInternalError(c, err, "create application")
		return
	}

	if cc.auditor != nil {
		cc.auditor.LogApplication(candidate.ID, candidate.FullName, c.ClientIP())
	}

	respondCreated(c, candidate)
}

func (cc *CandidatesController) load(c *gin.Context) (*entities.Candidate, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	candidate, err := cc.store.GetByID(id)
	if errors.Is(err, candidates.ErrNotFound) {
		respondNotFound(c, "candidate")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, err, "get candidate")
		return nil, false
	}
	return candidate, true
}
