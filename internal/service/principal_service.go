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

// PrincipalLimits bounds principal listings.
var PrincipalLimits = models.PageLimits{DefaultCount: 50, MaxCount: 100, MaxOffset: 5000}

var errPrincipalMissing = appErrors.Clone(appErrors.ErrNotFound, "Завуча с таким ИД не существует")

var principalConstraintErrors = map[string]*appErrors.Error{
	"employees_phone_key": appErrors.Clone(appErrors.ErrAlreadyExists, "Завуч с таким номером телефона уже существует"),
}

type principalRepository interface {
	ListPrincipals(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	CreatePrincipal(ctx context.Context, employee *models.Employee) error
	UpdatePrincipal(ctx context.Context, employee *models.Employee, passwordHash *string) error
	DeletePrincipal(ctx context.Context, id int64) error
}

// CreatePrincipalRequest represents payload for creating principals.
type CreatePrincipalRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=64"`
	LastName   string  `json:"last_name" validate:"required,max=64"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=64"`
	Phone      string  `json:"phone" validate:"required,max=32"`
	Password   string  `json:"password" validate:"required,max=256"`
}

// UpdatePrincipalRequest represents payload for updating principals.
type UpdatePrincipalRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=64"`
	LastName   string  `json:"last_name" validate:"required,max=64"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=64"`
	Phone      string  `json:"phone" validate:"required,max=32"`
	Password   *string `json:"password" validate:"omitempty,max=256"`
}

// PrincipalService orchestrates principal operations.
type PrincipalService struct {
	repo      principalRepository
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewPrincipalService constructs a PrincipalService.
func NewPrincipalService(repo principalRepository, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *PrincipalService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrincipalService{repo: repo, hasher: hasher, validator: validate, logger: logger, metrics: metrics}
}

// List returns principals matching the filter.
func (s *PrincipalService) List(ctx context.Context, filter models.EmployeeFilter, page models.PageRequest) ([]models.Employee, error) {
	filter.Count, filter.Offset = PrincipalLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("principals_list", time.Now())

	principals, err := s.repo.ListPrincipals(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return principals, nil
}

// Create registers a principal.
func (s *PrincipalService) Create(ctx context.Context, req CreatePrincipalRequest) (*models.Employee, error) {
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
	principal := &models.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.repo.CreatePrincipal(ctx, principal); err != nil {
		return nil, storeError(err, nil, principalConstraintErrors)
	}
	s.logger.Info("principal created", zap.Int64("employee_id", principal.ID))
	return principal, nil
}

// Update rewrites a principal.
func (s *PrincipalService) Update(ctx context.Context, id int64, req UpdatePrincipalRequest) (*models.Employee, error) {
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

	principal := &models.Employee{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Phone:      req.Phone,
	}
	if err := s.repo.UpdatePrincipal(ctx, principal, hash); err != nil {
		return nil, storeError(err, errPrincipalMissing, principalConstraintErrors)
	}
	return principal, nil
}

// Delete removes a principal.
func (s *PrincipalService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePrincipal(ctx, id); err != nil {
		return deleteError(err, errPrincipalMissing)
	}
	s.logger.Info("principal deleted", zap.Int64("employee_id", id))
	return nil
}
