// Package validation checks input entities with go-playground/validator and
// converts failures into a single error type callers can match on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/mrlokans/reader/internal/entities"
)

// ErrValidation matches every *Error via errors.Is.
var ErrValidation = errors.New("validation failed")

// Error carries per-field messages keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Field builds an *Error for a single field.
func Field(name, message string) *Error {
	return &Error{Fields: map[string]string{name: message}}
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports JSON tag names and knows the
// cross-field document rules.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" || name == "-" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		return name
	})

	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterStructValidation(documentRules, entities.Document{})

	return &Validator{v: v}
}

var std = New()

// Struct validates s with the package validator.
func Struct(s any) error {
	return std.Validate(s)
}

// Validate validates a struct and returns an *Error on failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

// documentRules ties file_path and content to the document kind.
func documentRules(sl validator.StructLevel) {
	doc := sl.Current().Interface().(entities.Document)

	switch doc.Kind {
	case entities.DocumentKindPDF:
		if strings.TrimSpace(doc.FilePath) == "" {
			sl.ReportError(doc.FilePath, "file_path", "FilePath", "required_for_pdf", "")
		}
		if doc.Content != "" {
			sl.ReportError(doc.Content, "content", "Content", "article_only", "")
		}
	case entities.DocumentKindArticle:
		if doc.FilePath != "" {
			sl.ReportError(doc.FilePath, "file_path", "FilePath", "pdf_only", "")
		}
	}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "required_for_pdf":
		return "is required for pdf documents"
	case "article_only":
		return "is only allowed for article documents"
	case "pdf_only":
		return "is only allowed for pdf documents"
	default:
		return fmt.Sprintf("failed %q check", e.Tag())
	}
}
