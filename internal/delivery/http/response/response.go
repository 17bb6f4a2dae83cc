package response

import (
	"job-posting-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RequestID returns the ID assigned by the RequestID middleware, falling back
// to the request context for handlers that run outside gin's key store.
func RequestID(c *gin.Context) string {
	if id := c.GetString(string(domain.KeyRequestID)); id != "" {
		return id
	}
	if c.Request != nil {
		id, _ := c.Request.Context().Value(domain.KeyRequestID).(string)
		return id
	}
	return ""
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: RequestID(c),
	})
}
