package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Field   *string `json:"field"`
	Status  int     `json:"status"`
	Err     error   `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so that clones and wrapped copies of a
// predefined error still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusBadRequest, "Неправильный телефон или пароль")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Необходима авторизация")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "Недостаточно прав для выполнения операции")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "Ресурс не найден")
	ErrTargetNotFound     = New("NOT_FOUND", http.StatusBadRequest, "Запись с таким ИД не существует")
	ErrAlreadyExists      = New("ALREADY_EXISTS", http.StatusBadRequest, "Такая запись уже существует")
	ErrUnknownReference   = New("UNKNOWN_REFERENCE", http.StatusBadRequest, "Связанная запись не существует")
	ErrInUse              = New("IN_USE", http.StatusBadRequest, "Невозможно удалить запись, на неё ссылаются другие данные")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "Некорректные данные")
	ErrBadRequest         = New("BAD_REQUEST", http.StatusBadRequest, "Некорректный запрос")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "Внутренняя серверная ошибка, обратитесь к администрации")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithField returns a copy of err pointing the client at a form field.
func WithField(err *Error, field string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Field = &field
	return &clone
}
