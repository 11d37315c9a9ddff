package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindErrorMessage turns a request binding failure into a client-facing
// message. Validation failures are reported per field, anything else
// (malformed JSON, type mismatches) falls back to the raw error.
func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed validation on '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return "Invalid request: " + strings.Join(msgs, "; ")
	}
	return "Invalid request format: " + err.Error()
}
