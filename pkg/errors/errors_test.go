package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneKeepsIdentity(t *testing.T) {
	clone := Clone(ErrAlreadyExists, "Такой кабинет уже существует")

	assert.True(t, errors.Is(clone, ErrAlreadyExists))
	assert.Equal(t, "Такой кабинет уже существует", clone.Message)
	assert.Equal(t, "Такая запись уже существует", ErrAlreadyExists.Message)
	assert.Equal(t, http.StatusBadRequest, clone.Status)
}

func TestWithFieldDoesNotMutateOriginal(t *testing.T) {
	withField := WithField(ErrValidation, "phone")

	require.NotNil(t, withField.Field)
	assert.Equal(t, "phone", *withField.Field)
	assert.Nil(t, ErrValidation.Field)
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	cause := fmt.Errorf("query: %w", sql.ErrConnDone)
	appErr := FromError(cause)

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
	assert.Nil(t, FromError(nil))
}

func TestFromErrorFindsWrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Clone(ErrTargetNotFound, "Кабинета с таким ИД не существует"))
	appErr := FromError(wrapped)

	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Кабинета с таким ИД не существует", appErr.Message)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "Некорректные данные", ErrValidation.Error())
	assert.Equal(t, "Некорректный запрос: boom", Wrap(errors.New("boom"), "BAD_REQUEST", http.StatusBadRequest, "Некорректный запрос").Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}
