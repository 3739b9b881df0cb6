package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Envelope is the success response contract.
type Envelope struct {
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

// ErrorEnvelope is the failure response contract.
type ErrorEnvelope struct {
	Message string  `json:"message"`
	Field   *string `json:"field"`
	Success bool    `json:"success"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Data: data, Success: true})
}

// OK responds with HTTP 200 and the payload.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error converts err to the failure envelope. It is the single place where
// the status and client message are decided; internal errors are attached to
// the gin context for logging and replaced by a generic message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)

	message := appErr.Message
	var field *string
	if appErr.Status >= http.StatusInternalServerError {
		message = appErrors.ErrInternal.Message
	} else {
		field = appErr.Field
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorEnvelope{Message: message, Field: field, Success: false})
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
