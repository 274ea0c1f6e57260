package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/validation"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // per-field validation messages
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// IDResponse is returned by endpoints that create a row.
type IDResponse struct {
	ID uint `json:"id"`
}

// Machine-readable error codes.
const (
	CodeValidation     = "validation_failed"
	CodeNotFound       = "not_found"
	CodeDuplicate      = "duplicate"
	CodeUnavailable    = "storage_unavailable"
	CodeNoOpenDocument = "no_open_document"
	CodeInvalidEvent   = "invalid_event"
)

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 without exposing it.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondStoreError maps store errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, context string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: CodeValidation, Details: verr.Fields})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, database.ErrDuplicateName):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeDuplicate})
	case errors.Is(err, database.ErrNotInitialized), errors.Is(err, database.ErrStorageUnavailable):
		log.Printf("Storage unavailable (%s): %v", context, err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable", Code: CodeUnavailable})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseLimitQuery reads an optional positive integer query parameter.
// Missing values yield fallback.
func parseLimitQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
