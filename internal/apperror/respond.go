package apperror

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Respond writes the JSON error body for err and the status its kind
// maps to. Unexpected errors are logged in full and surfaced opaquely.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindAlreadyExists, KindCapacityExceeded:
		status = http.StatusConflict
	case KindInvalidArgument, KindValidation:
		status = http.StatusBadRequest
	case KindUnauthorized:
		status = http.StatusUnauthorized
	case KindAccessDenied:
		status = http.StatusForbidden
	}

	if appErr.Kind == KindInternal || appErr.Kind == KindUnknown {
		cause := appErr.Message
		if appErr.Err != nil {
			cause = appErr.Err.Error()
		}
		log.Printf("unhandled error on %s %s (request_id=%s): %s",
			c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), cause)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": appErr.Message})
}

// FromBinding converts a gin binding failure into a single Validation
// error carrying every field-level message joined into one report.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		return Validationf("%s", strings.Join(messages, "; "))
	}
	return Validationf("invalid input: %s", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "min":
		return fe.Field() + " is too short (min " + fe.Param() + ")"
	case "max":
		return fe.Field() + " is too long (max " + fe.Param() + ")"
	default:
		return fe.Field() + " is invalid"
	}
}
