package repository

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Postgres SQLSTATE codes inspected by the translation helpers.
const (
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeCheckViolation      pq.ErrorCode = "23514"
)

// Domain errors raised from constraint violations. Names mirror the DDL in
// migrations/000001_init_schema.up.sql.
var (
	ErrDuplicatePhone = appErrors.Clone(appErrors.ErrAlreadyExists, "Работник с таким номером телефона уже существует")
	ErrUnknownSubject = appErrors.Clone(appErrors.ErrUnknownReference, "Предмета с таким ИД не существует")
	ErrUnknownRoom    = appErrors.Clone(appErrors.ErrUnknownReference, "Кабинета с таким ИД не существует")
	ErrUnknownClass   = appErrors.Clone(appErrors.ErrUnknownReference, "Класса с таким ИД не существует")
	ErrUnknownStudent = appErrors.Clone(appErrors.ErrUnknownReference, "Ученика с таким ИД не существует")
	ErrUnknownTeacher = appErrors.Clone(appErrors.ErrUnknownReference, "Учителя с таким ИД не существует")

	ErrDuplicateSubject = appErrors.Clone(appErrors.ErrAlreadyExists, "Такой предмет уже существует")
	ErrDuplicateClass   = appErrors.Clone(appErrors.ErrAlreadyExists, "Такой класс уже существует")
	ErrDuplicateRoom    = appErrors.Clone(appErrors.ErrAlreadyExists, "Такой кабинет уже существует")
	ErrDuplicateStudent = appErrors.Clone(appErrors.ErrAlreadyExists, "Такой ученик уже существует в данном классе")

	ErrMarkOutOfRange = appErrors.WithField(appErrors.Clone(appErrors.ErrValidation, "Оценка должна быть от 2 до 5"), "mark")
)

var constraintErrors = map[string]*appErrors.Error{
	"employees_phone_key":      ErrDuplicatePhone,
	"teachers_subject_id_fkey": ErrUnknownSubject,
	"teachers_room_id_fkey":    ErrUnknownRoom,
	"subjects_subject_key":     ErrDuplicateSubject,
	"classes_class_key":        ErrDuplicateClass,
	"rooms_room_key":           ErrDuplicateRoom,
	"rooms_subject_id_fkey":    ErrUnknownSubject,
	"students_class_id_fkey":   ErrUnknownClass,
	"students_name_class_key":  ErrDuplicateStudent,
	"marks_student_id_fkey":    ErrUnknownStudent,
	"marks_subject_id_fkey":    ErrUnknownSubject,
	"marks_teacher_id_fkey":    ErrUnknownTeacher,
	"marks_mark_check":         ErrMarkOutOfRange,
}

// TranslateConstraint maps a constraint violation raised by an insert or
// update to its domain error. Overrides take precedence over the shared table
// for callers whose wording differs, e.g. principals. Errors that are not
// known constraint violations are returned unchanged.
func TranslateConstraint(err error, overrides map[string]*appErrors.Error) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
	default:
		return err
	}

	if domainErr, found := overrides[pqErr.Constraint]; found {
		return wrapConstraint(domainErr, err)
	}
	if domainErr, found := constraintErrors[pqErr.Constraint]; found {
		return wrapConstraint(domainErr, err)
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return wrapConstraint(appErrors.ErrAlreadyExists, err)
	case codeForeignKeyViolation:
		return wrapConstraint(appErrors.ErrUnknownReference, err)
	default:
		return wrapConstraint(appErrors.ErrValidation, err)
	}
}

// TranslateDeleteConstraint reports rows still referenced by other tables.
func TranslateDeleteConstraint(err error) error {
	if pqErr, ok := asPQError(err); ok && pqErr.Code == codeForeignKeyViolation {
		return wrapConstraint(appErrors.ErrInUse, err)
	}
	return err
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func wrapConstraint(domainErr *appErrors.Error, cause error) *appErrors.Error {
	wrapped := *domainErr
	wrapped.Err = cause
	return &wrapped
}
