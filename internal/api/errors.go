package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nutridiary/backend/internal/fatsecret"
	"github.com/nutridiary/backend/internal/service"
)

// respondError translates the error taxonomy into HTTP responses: validation
// failures are 400, upstream misses 404, upstream rejections forward their
// status/code/message, and everything else is a 500 tagged with op.
func respondError(c *gin.Context, op string, err error) {
	var apiErr *fatsecret.APIError
	var authErr *fatsecret.AuthError

	switch {
	case errors.Is(err, service.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
	case errors.Is(err, fatsecret.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "Not found"})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, gin.H{"code": apiErr.Code, "message": apiErr.Message, "raw": apiErr.Raw})
	case errors.As(err, &authErr), errors.Is(err, fatsecret.ErrMissingCredentials):
		c.JSON(http.StatusInternalServerError, gin.H{"error": op + "_failed", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": op + "_failed", "message": err.Error()})
	}
}

// yes interprets the usual truthy query-string spellings, case-insensitively.
func yes(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
