package appErrors

import (
	"net/http"
	"strings"

	"buddymatch_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an error to the gin context in the standard envelope.
// Unknown errors are wrapped as internal errors so callers never leak raw
// failure details.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "server error", err)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleValidationError converts a gin binding error into the standard
// validation envelope, with per-field details when the error came from the
// validator.
func HandleValidationError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if As(err, &validationErrs) {
		fields := map[string]string{}
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
		}
		HandleError(c, ErrValidationFailed.WithDetails(gin.H{"fields": fields}))
		return
	}

	HandleError(c, ErrValidationFailed.WithDetails(gin.H{"details": err.Error()}))
}
