package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// event_id -> Event Id. Casers are stateful, so each call gets its own.
func formatFieldName(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError turns the first binding failure into an INVALID_INPUT
// error naming the offending field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return ErrInvalidInput
	}

	fe := errs[0]
	field := formatFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return RequiredField(field)
	case "max":
		return New(CodeInvalidInput, field+" must be at most "+fe.Param()+" characters", http.StatusBadRequest)
	case "min":
		return New(CodeInvalidInput, field+" must be at least "+fe.Param()+" characters", http.StatusBadRequest)
	case "oneof":
		return New(CodeInvalidInput, field+" must be one of: "+strings.Join(strings.Fields(fe.Param()), ", "), http.StatusBadRequest)
	default:
		return InvalidField(field)
	}
}
