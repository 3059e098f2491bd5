// Package response writes the JSON error bodies shared by every handler.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projects_backend/internal/shared/apperror"
)

// MsgInvalidBody is returned when a request body is not valid JSON for its DTO.
const MsgInvalidBody = "Invalid request body"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusResponse is the body of preflight responses.
type StatusResponse struct {
	Status string `json:"status"`
}

// Error writes err with the status code of its kind.
// Internal errors carry a details field only when withDetails is set.
func Error(c *gin.Context, err error, withDetails bool) {
	status := apperror.HTTPStatus(apperror.KindOf(err))
	body := ErrorResponse{Error: apperror.MessageOf(err)}
	if body.Error == "" {
		body.Error = http.StatusText(status)
	}
	if withDetails && status == http.StatusInternalServerError {
		body.Details = detailsOf(err)
	}
	c.JSON(status, body)
}

// InvalidBody writes the 400 returned for malformed JSON.
func InvalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody})
}

func detailsOf(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}
