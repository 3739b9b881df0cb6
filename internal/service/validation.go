package service

import (
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validationError points the client at the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		wrapped := appErrors.WithField(appErrors.ErrValidation, fieldErrs[0].Field())
		wrapped.Err = err
		return wrapped
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}

// storeError converts a repository failure into a client-facing error.
// sql.ErrNoRows becomes notFound when given, known constraint violations
// become their domain errors, and anything else is internal.
func storeError(err error, notFound *appErrors.Error, overrides map[string]*appErrors.Error) error {
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		wrapped := *notFound
		wrapped.Err = err
		return &wrapped
	}
	translated := repository.TranslateConstraint(err, overrides)
	var appErr *appErrors.Error
	if errors.As(translated, &appErr) {
		return translated
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}

// deleteError is storeError for deletes, where a foreign key violation means
// the row is still referenced.
func deleteError(err error, notFound *appErrors.Error) error {
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return storeError(err, notFound, nil)
	}
	translated := repository.TranslateDeleteConstraint(err)
	var appErr *appErrors.Error
	if errors.As(translated, &appErr) {
		return translated
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
