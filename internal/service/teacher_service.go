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

// TeacherLimits bounds teacher listings.
var TeacherLimits = models.PageLimits{DefaultCount: 50, MaxCount: 100, MaxOffset: 2000}

var errTeacherMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Учителя с таким ИД не существует")

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher, passwordHash *string) error
	Delete(ctx context.Context, id int64) error
}

// CreateTeacherRequest represents payload for creating teachers.
type CreateTeacherRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=64"`
	LastName   string  `json:"last_name" validate:"required,max=64"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=64"`
	SubjectID  int64   `json:"subject_id" validate:"required,gt=0"`
	RoomID     *int64  `json:"room_id" validate:"omitempty,gt=0"`
	Phone      string  `json:"phone" validate:"required,max=32"`
	Password   string  `json:"password" validate:"required,max=256"`
}

// UpdateTeacherRequest represents payload for updating teachers. A missing
// password keeps the current one.
type UpdateTeacherRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=64"`
	LastName   string  `json:"last_name" validate:"required,max=64"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=64"`
	SubjectID  int64   `json:"subject_id" validate:"required,gt=0"`
	RoomID     *int64  `json:"room_id" validate:"omitempty,gt=0"`
	Phone      string  `json:"phone" validate:"required,max=32"`
	Password   *string `json:"password" validate:"omitempty,max=256"`
}

// TeacherService orchestrates teacher operations. Writes touch the employee
// row and the linkage row together.
type TeacherService struct {
	repo      teacherRepository
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, hasher: hasher, validator: validate, logger: logger, metrics: metrics}
}

// List returns teachers matching the filter.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter, page models.PageRequest) ([]models.Teacher, error) {
	filter.Count, filter.Offset = TeacherLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("teachers_list", time.Now())

	teachers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return teachers, nil
}

// Create registers a teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.MiddleName = trimOptional(req.MiddleName)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.Teacher{
		Employee: models.Employee{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MiddleName:   req.MiddleName,
			Phone:        req.Phone,
			PasswordHash: hash,
		},
		SubjectID: req.SubjectID,
		RoomID:    req.RoomID,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, storeError(err, nil, nil)
	}
	s.logger.Info("teacher created", zap.Int64("employee_id", teacher.ID))
	return teacher, nil
}

// Update rewrites a teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.MiddleName = trimOptional(req.MiddleName)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
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

	teacher := &models.Teacher{
		Employee: models.Employee{
			ID:         id,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			MiddleName: req.MiddleName,
			Phone:      req.Phone,
		},
		SubjectID: req.SubjectID,
		RoomID:    req.RoomID,
	}
	if err := s.repo.Update(ctx, teacher, hash); err != nil {
		return nil, storeError(err, errTeacherMissing, nil)
	}
	return teacher, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, errTeacherMissing)
	}
	s.logger.Info("teacher deleted", zap.Int64("employee_id", id))
	return nil
}
