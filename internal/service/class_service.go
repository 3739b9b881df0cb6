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

// ClassLimits bounds class listings.
var ClassLimits = models.PageLimits{DefaultCount: 50, MaxCount: 50, MaxOffset: 5000}

var (
	errClassUpdateMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Класса с таким ИД не существует")
	errClassDeleteMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Такого класса не существует")
)

type classRepository interface {
	List(ctx context.Context, filter models.NamedFilter) ([]models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassService orchestrates class operations.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns classes matching the filter.
func (s *ClassService) List(ctx context.Context, filter models.NamedFilter, page models.PageRequest) ([]models.Class, error) {
	filter.Count, filter.Offset = ClassLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("classes_list", time.Now())

	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return classes, nil
}

// Create registers a new class.
func (s *ClassService) Create(ctx context.Context, req NameRequest) (*models.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	class := &models.Class{Name: req.Name}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, storeError(err, nil, nil)
	}
	return class, nil
}

// Update renames a class.
func (s *ClassService) Update(ctx context.Context, id int64, req NameRequest) (*models.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	class := &models.Class{ID: id, Name: req.Name}
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, storeError(err, errClassUpdateMissing, nil)
	}
	return class, nil
}

// Delete removes a class that no student belongs to.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, errClassDeleteMissing)
	}
	s.logger.Info("class deleted", zap.Int64("class_id", id))
	return nil
}
