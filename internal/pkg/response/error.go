package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
// The front end renders every entry of the list verbatim.
type ErrorResponse struct {
	Error []string `json:"error"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code and the
// reasons list. Anything else is treated as an internal failure: the cause is
// logged server-side and a generic reason is returned to the caller.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Reasons})
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: []string{"internal server error"}})
}
