package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// ErrUserNotFound is returned by Me when the session outlived its employee.
var ErrUserNotFound = appErrors.Clone(appErrors.ErrNotFound, "Пользователь не найден")

const dummyPassword = "timing-equaliser"

type authEmployeeRepository interface {
	FindCredentialsByPhone(ctx context.Context, phone string) (*models.Credentials, error)
	FindPrincipal(ctx context.Context, id int64) (*models.Employee, error)
}

type authTeacherRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type tokenEncoder interface {
	Encode(claims models.Claims) (string, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	SessionTTL time.Duration
}

// AuthService provides the login and profile use cases.
type AuthService struct {
	employees authEmployeeRepository
	teachers  authTeacherRepository
	hasher    passwordHasher
	tokens    tokenEncoder
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
	dummyHash string
}

// NewAuthService constructs an AuthService. It hashes a throwaway password
// once so that logins for unknown phones cost the same as real ones.
func NewAuthService(
	employees authEmployeeRepository,
	teachers authTeacherRepository,
	hasher passwordHasher,
	tokens tokenEncoder,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	config AuthConfig,
) (*AuthService, error) {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 72 * time.Hour
	}
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		employees: employees,
		teachers:  teachers,
		hasher:    hasher,
		tokens:    tokens,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// Login verifies the credentials and issues a session token. Unknown phones
// and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	defer s.metrics.observeSince("auth_login", time.Now())

	creds, err := s.employees.FindCredentialsByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, _ = s.hasher.Verify(req.Password, s.dummyHash)
			s.metrics.RecordLogin("rejected")
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		s.metrics.RecordLogin("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch credentials")
	}

	ok, err := s.hasher.Verify(req.Password, creds.PasswordHash)
	if err != nil {
		s.metrics.RecordLogin("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored password hash is unreadable")
	}
	if !ok {
		s.metrics.RecordLogin("rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if !creds.Role.Valid() {
		s.metrics.RecordLogin("error")
		return nil, appErrors.Wrap(fmt.Errorf("employee %d has role %q", creds.ID, creds.Role), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unknown employee role")
	}

	expiresAt := s.now().UTC().Add(s.config.SessionTTL).Truncate(time.Second)
	token, err := s.tokens.Encode(models.Claims{EmployeeID: creds.ID, Role: creds.Role, ExpiresAt: expiresAt})
	if err != nil {
		s.metrics.RecordLogin("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.metrics.RecordLogin("success")
	s.logger.Info("employee signed in", zap.Int64("employee_id", creds.ID), zap.String("role", string(creds.Role)))
	return &models.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Me returns the profile of the session owner: a *models.Teacher for
// teachers and a *models.Employee for principals.
func (s *AuthService) Me(ctx context.Context, claims models.Claims) (interface{}, error) {
	switch claims.Role {
	case models.RoleTeacher:
		teacher, err := s.teachers.FindByID(ctx, claims.EmployeeID)
		if err != nil {
			return nil, storeError(err, ErrUserNotFound, nil)
		}
		return teacher, nil
	case models.RolePrincipal:
		principal, err := s.employees.FindPrincipal(ctx, claims.EmployeeID)
		if err != nil {
			return nil, storeError(err, ErrUserNotFound, nil)
		}
		return principal, nil
	default:
		return nil, appErrors.ErrUnauthorized
	}
}
