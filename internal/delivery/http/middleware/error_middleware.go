package middleware

import (
	"errors"
	"net/http"

	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"
	"job-posting-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var (
			appErr   *apperror.AppError
			validErr *domain.ValidationError
		)
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "path", c.FullPath(), "error", err, "request_id", response.RequestID(c))
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
		case errors.As(err, &validErr):
			response.Error(c, http.StatusBadRequest, err.Error(), validErr.Fields)
		case domain.IsBusinessError(err):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Job not found", nil)
		default:
			// Internal details stay in the server log
			logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err, "request_id", response.RequestID(c))
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
