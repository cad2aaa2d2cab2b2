package handlers

import (
	"errors"
	"net/http"

	"booktracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// User-facing messages; part of the API contract, do not reword casually.
const (
	msgMissingFields       = "Please provide all required fields"
	msgMissingLoginFields  = "Please provide email and password"
	msgPasswordTooShort    = "Password must be at least 6 characters"
	msgUserExists          = "User already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgTitleAuthorRequired = "Title and author are required"
	msgInvalidStatus       = "Status must be one of: Want to Read, Reading, Completed"
	msgBookNotFound        = "Book not found"
	msgInvalidBody         = "Invalid request body"
	msgServerError         = "Server error"

	msgUserCreated = "User created successfully"
	msgLoginOK     = "Login successful"
	msgBookDeleted = "Book deleted successfully"
)

// classifyError maps domain errors to an HTTP status and user-facing message.
// Unknown errors become a generic 500 so internal details never leak.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest, msgPasswordTooShort
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, msgUserExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, service.ErrTitleAuthorRequired):
		return http.StatusBadRequest, msgTitleAuthorRequired
	case errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, msgInvalidStatus
	case errors.Is(err, service.ErrBookNotFound):
		return http.StatusNotFound, msgBookNotFound
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// respondError translates err at the operation boundary: expected failures are
// logged at info, unexpected ones at error before the generic 500.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status, msg := classifyError(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if status == http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(status, gin.H{"message": msg})
}

// bindJSON tries to bind the request body into dst and writes a 400 JSON on
// failure. Returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	msg := msgInvalidBody
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "bookstatus" {
				msg = msgInvalidStatus
				break
			}
		}
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "err", err)
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
	return false
}
