package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/validation"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps a service error onto the boundary contract: taxonomy
// errors keep their status and code, anything else is an opaque 500.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.From(err)
	RespondError(c, ae.Status, ae.Code, ae)
}

// RespondValidationErrors renders field-scoped rule failures as a 400 with
// the failures listed verbatim.
func RespondValidationErrors(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
