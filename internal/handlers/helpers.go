package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/middleware"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads the :id path parameter. An id that is not a UUID cannot
// name any row, so it is reported with the resource's not-found error.
func parsePathID(c *gin.Context, notFound *apperrors.AppError) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", notFound
	}
	return id, nil
}

// bindJSON binds the request body into req and converts binding failures
// into field-level validation errors.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindingError translates decoder and validator errors into an AppError.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return apperrors.WithFields(apperrors.ErrValidation, fields)
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperrors.Field(typeErr.Field, fmt.Sprintf("Expected %s.", typeErr.Type.String()))
	case errors.Is(err, money.ErrSyntax), errors.Is(err, money.ErrPrecision), errors.Is(err, money.ErrTooLarge):
		return apperrors.Field("amount", err.Error())
	case errors.Is(err, models.ErrInvalidDate):
		return apperrors.Field("date", models.ErrInvalidDate.Error())
	case errors.Is(err, io.EOF):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Request body is required")
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed JSON body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "money":
		return "Enter a non-negative amount with at most 8 digits before and 2 after the decimal point."
	case "transaction_type":
		return fmt.Sprintf("%q is not a valid choice. Use income or expense.", fe.Value())
	}
	return "Invalid value."
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and fields.
// Otherwise it logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", middleware.GetRequestID(c),
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"error": appErr})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{"error": apperrors.ErrInternalServer})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
