package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// MarkLimits bounds mark listings.
var MarkLimits = models.PageLimits{DefaultCount: 100, MaxCount: 500, MaxOffset: 10000}

var errTeacherIDRequired = appErrors.WithField(appErrors.Clone(appErrors.ErrValidation, "Необходимо указать учителя"), "teacher_id")

type markRepository interface {
	List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error)
	Create(ctx context.Context, mark *models.Mark) error
}

// CreateMarkRequest is the payload for grading a student. TeacherID is only
// read when a principal grades on behalf of a teacher.
type CreateMarkRequest struct {
	TeacherID *int64 `json:"teacher_id" validate:"omitempty,gt=0"`
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	SubjectID int64  `json:"subject_id" validate:"required,gt=0"`
	Mark      int16  `json:"mark"`
}

// MarkService orchestrates mark operations.
type MarkService struct {
	repo      markRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewMarkService constructs a MarkService.
func NewMarkService(repo markRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *MarkService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns marks matching the filter.
func (s *MarkService) List(ctx context.Context, filter models.MarkFilter, page models.PageRequest) ([]models.Mark, error) {
	filter.Count, filter.Offset = MarkLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("marks_list", time.Now())

	marks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return marks, nil
}

// Create records a mark. Teachers always grade as themselves regardless of
// the submitted teacher_id; principals must name the teacher.
func (s *MarkService) Create(ctx context.Context, claims models.Claims, req CreateMarkRequest) (*models.Mark, error) {
	if req.Mark < models.MinMark || req.Mark > models.MaxMark {
		return nil, repository.ErrMarkOutOfRange
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var teacherID int64
	switch claims.Role {
	case models.RoleTeacher:
		teacherID = claims.EmployeeID
	case models.RolePrincipal:
		if req.TeacherID == nil {
			return nil, errTeacherIDRequired
		}
		teacherID = *req.TeacherID
	default:
		return nil, appErrors.ErrForbidden
	}

	mark := &models.Mark{
		Mark:      req.Mark,
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		TeacherID: teacherID,
	}
	if err := s.repo.Create(ctx, mark); err != nil {
		return nil, storeError(err, nil, nil)
	}
	s.logger.Info("mark created",
		zap.Int64("mark_id", mark.ID),
		zap.Int64("teacher_id", teacherID),
		zap.Int64("graded_by", claims.EmployeeID),
	)
	return mark, nil
}
