package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError adalah satu pelanggaran validasi yang dikirim di error.details.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// formatFieldName: salary_period -> Salary Period
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError menerjemahkan error binding gin menjadi AppError.
// Pesan diambil dari pelanggaran pertama, details memuat semuanya.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		details := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, FieldError{Field: e.Field(), Rule: e.Tag()})
		}

		first := verrs[0]
		field := formatFieldName(first.Field())

		var appErr *AppError
		switch first.Tag() {
		case "required":
			appErr = RequiredField(field)
		case "uuid", "uuid4":
			appErr = New(CodeInvalidInput, fmt.Sprintf("%s must be a valid UUID", field), http.StatusBadRequest)
		default:
			appErr = InvalidField(field)
		}
		return appErr.WithDetails(details)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return InvalidField(formatFieldName(typeErr.Field))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrMalformedBody
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
