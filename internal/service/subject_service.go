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

// SubjectLimits bounds subject listings.
var SubjectLimits = models.PageLimits{DefaultCount: 50, MaxCount: 50, MaxOffset: 5000}

var (
	errSubjectUpdateMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Предмета с таким ИД не существует")
	errSubjectDeleteMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Такого предмета не существует")
)

type subjectRepository interface {
	List(ctx context.Context, filter models.NamedFilter) ([]models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// NameRequest is the payload for resources that only carry a name.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// SubjectService orchestrates subject operations.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns subjects matching the filter.
func (s *SubjectService) List(ctx context.Context, filter models.NamedFilter, page models.PageRequest) ([]models.Subject, error) {
	filter.Count, filter.Offset = SubjectLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("subjects_list", time.Now())

	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return subjects, nil
}

// Create registers a new subject.
func (s *SubjectService) Create(ctx context.Context, req NameRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	subject := &models.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, storeError(err, nil, nil)
	}
	return subject, nil
}

// Update renames a subject.
func (s *SubjectService) Update(ctx context.Context, id int64, req NameRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	subject := &models.Subject{ID: id, Name: req.Name}
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, storeError(err, errSubjectUpdateMissing, nil)
	}
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, errSubjectDeleteMissing)
	}
	s.logger.Info("subject deleted", zap.Int64("subject_id", id))
	return nil
}
