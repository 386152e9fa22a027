package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recruiter/internal/importers"
	"github.com/mrlokans/recruiter/internal/normalize"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

func newPaginatedResponse(data any, total int64, limit, offset int) PaginatedResponse {
	resp := PaginatedResponse{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}
	if limit > 0 {
		resp.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return resp
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// importErrorCodes maps import errors to a status and a stable code.
var importErrorCodes = []struct {
	err    error
	status int
	code   string
}{
	{importers.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, "unsupported_format"},
	{importers.ErrNoRows, http.StatusUnprocessableEntity, "no_rows"},
	{importers.ErrNoDataRows, http.StatusUnprocessableEntity, "no_data_rows"},
	{importers.ErrNoValidRows, http.StatusUnprocessableEntity, "no_valid_rows"},
	{importers.ErrMissingRequiredMapping, http.StatusUnprocessableEntity, "missing_required_mapping"},
	{importers.ErrNoValidCandidates, http.StatusUnprocessableEntity, "no_valid_candidates"},
	{importers.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{importers.ErrLargeImportNotConfirmed, http.StatusConflict, "large_import_not_confirmed"},
	{importers.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{importers.ErrUnknownPolicy, http.StatusBadRequest, "unknown_policy"},
	{importers.ErrUnknownField, http.StatusBadRequest, "unknown_field"},
	{importers.ErrUnknownHeader, http.StatusBadRequest, "unknown_header"},
	{normalize.ErrUnknownCatalog, http.StatusNotFound, "unknown_catalog"},
}

// respondImportError classifies err against the import sentinel errors.
// Unknown errors become a 500.
func respondImportError(c *gin.Context, err error, details any) {
	for _, e := range importErrorCodes {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: err.Error(), Code: e.code, Details: details})
			return
		}
	}
	respondInternalError(c, err, "import")
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads limit and offset query parameters, clamping limit
// to maxLimit.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err = strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
