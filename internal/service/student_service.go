package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// StudentLimits bounds student listings.
var StudentLimits = models.PageLimits{DefaultCount: 50, MaxCount: 100, MaxOffset: 10000}

var (
	errStudentMissing          = appErrors.Clone(appErrors.ErrTargetNotFound, "Ученика с таким ИД не существует")
	errStudentPasswordRequired = appErrors.WithField(appErrors.Clone(appErrors.ErrValidation, "Необходим пароль для ученика"), "password")
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student, passwordHash *string) error
	Delete(ctx context.Context, id int64) error
}

// StudentRequest is the payload for creating or updating students. The
// password is required on create and optional on update.
type StudentRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=64"`
	LastName   string  `json:"last_name" validate:"required,max=64"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=64"`
	ClassID    int64   `json:"class_id" validate:"required,gt=0"`
	Phone      string  `json:"phone" validate:"required,max=32"`
	Password   *string `json:"password" validate:"omitempty,max=256"`
}

func (r *StudentRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.MiddleName = trimOptional(r.MiddleName)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
}

func (r StudentRequest) student(id int64) *models.Student {
	return &models.Student{
		ID:         id,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		MiddleName: r.MiddleName,
		ClassID:    r.ClassID,
		Phone:      r.Phone,
	}
}

// StudentService orchestrates student operations.
type StudentService struct {
	repo      studentRepository
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, hasher: hasher, validator: validate, logger: logger, metrics: metrics}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter, page models.PageRequest) ([]models.Student, error) {
	filter.Count, filter.Offset = StudentLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("students_list", time.Now())

	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return students, nil
}

// Create enrolls a student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.Password == nil {
		return nil, errStudentPasswordRequired
	}

	hash, err := s.hasher.Hash(*req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	student := req.student(0)
	student.PasswordHash = hash
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, storeError(err, nil, nil)
	}
	return student, nil
}

// Update rewrites a student, keeping the password when none is given.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var hash *string
	if req.Password != nil {
		encoded, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		hash = &encoded
	}
	student := req.student(id)
	if err := s.repo.Update(ctx, student, hash); err != nil {
		return nil, storeError(err, errStudentMissing, nil)
	}
	return student, nil
}

// Delete removes a student together with their marks.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, errStudentMissing)
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
