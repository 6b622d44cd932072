// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire format is inherited from the existing PrintTrack frontend:
// success responses are the bare resource (object or array), errors are
// {"error": "...", "details": "..."}.

type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func OKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func ErrorResponse(c *gin.Context, statusCode int, message, details string) {
	c.JSON(statusCode, ErrorBody{Error: message, Details: details})
}

func BadRequestResponse(c *gin.Context, message, details string) {
	ErrorResponse(c, http.StatusBadRequest, message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, "")
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, "")
}

func InternalErrorResponse(c *gin.Context, message, details string) {
	ErrorResponse(c, http.StatusInternalServerError, message, details)
}
