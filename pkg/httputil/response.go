package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petgroom/admin-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Field names the offending input on validation failures.
	Field string `json:"field,omitempty"`
	// Current and Requested explain why a status transition was blocked.
	Current   string `json:"current,omitempty"`
	Requested string `json:"requested,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	apiErr := &Error{Message: "internal server error"}

	if appErr, ok := err.(*errors.AppError); ok {
		status = appErr.StatusCode()
		apiErr.Message = appErr.Message
		apiErr.Field = appErr.Field
		apiErr.Current = appErr.Current
		apiErr.Requested = appErr.Requested
	}
	apiErr.Code = status

	c.JSON(status, Response{
		Success: false,
		Error:   apiErr,
	})
}
