package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	apperrors "soulmate/backend/pkg/errors"
)

// statusFor maps application error types to HTTP status codes.
func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypePrecondition, apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("user_id", c.Param("id")),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "Service temporarily unavailable"})
		return
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"type":  apperrors.TypeOf(err),
	})
}

// bind decodes the JSON body and writes a 400 on failure.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		body := gin.H{"error": "invalid request body", "type": apperrors.ErrorTypeValidation}
		if fields := fieldErrors(err); fields != nil {
			body["fields"] = fields
		}
		c.JSON(http.StatusBadRequest, body)
		return false
	}
	return true
}
