package response

import (
	"net/http"

	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/gin-gonic/gin"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// Every endpoint answers with the same envelope: a success flag plus either
// a typed payload or a human-readable message and machine error kind.

// OK sends a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Message sends a 200 envelope with only a message, no payload.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// BadRequest sends a 400 failure envelope.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, "bad_request", message)
}

// Unauthorized sends a 401 failure envelope (no bearer credential at all).
func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, string(errs.KindUnauthenticated), message)
}

// Forbidden sends a 403 failure envelope (credential present but unresolvable).
func Forbidden(c *gin.Context, message string) {
	fail(c, http.StatusForbidden, string(errs.KindForbidden), message)
}

// NotFound sends a 404 failure envelope.
func NotFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, string(errs.KindNotFound), message)
}

// InternalError sends a 500 failure envelope.
func InternalError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, string(errs.KindInternal), err.Error())
}

// Error maps a typed error to its HTTP status and sends the failure envelope.
func Error(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	fail(c, statusFor(kind), string(kind), err.Error())
}

func fail(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": kind, "message": message})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidCredential:
		return http.StatusUnauthorized
	case errs.KindAccountDisabled, errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindDuplicateUsername:
		return http.StatusConflict
	case errs.KindWeakCredential, errs.KindInvalidState:
		return http.StatusBadRequest
	case errs.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case errs.KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
