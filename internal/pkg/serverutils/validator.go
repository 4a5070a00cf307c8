package serverutils

import (
	"fmt"
	"strings"

	"chat-journal-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct's validator tags and folds the first
// failures into a single ValidationError suitable for a 400 response.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid request body")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describeFieldError(fieldErr))
	}
	return apperr.Validation(strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
