package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/noah-isme/school-admin-api/internal/models"
)

type fakeHasher struct {
	verifyCalls []string
	hashErr     error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, encoded string) (bool, error) {
	h.verifyCalls = append(h.verifyCalls, encoded)
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return encoded == "hashed:"+password, nil
}

type fakeTokens struct {
	issued []models.Claims
}

func (f *fakeTokens) Encode(claims models.Claims) (string, error) {
	f.issued = append(f.issued, claims)
	return "signed-token", nil
}

type mockEmployeeRepo struct {
	creds       map[string]*models.Credentials
	principals  map[int64]*models.Employee
	findErr     error
	created     *models.Employee
	createErr   error
	updateErr   error
	updatedHash *string
	deleteErr   error
	listFilter  models.EmployeeFilter
}

func (m *mockEmployeeRepo) FindCredentialsByPhone(ctx context.Context, phone string) (*models.Credentials, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if creds, ok := m.creds[phone]; ok {
		return creds, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEmployeeRepo) FindPrincipal(ctx context.Context, id int64) (*models.Employee, error) {
	if p, ok := m.principals[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEmployeeRepo) ListPrincipals(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	m.listFilter = filter
	return []models.Employee{}, nil
}

func (m *mockEmployeeRepo) CreatePrincipal(ctx context.Context, employee *models.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	employee.ID = 1
	employee.Role = models.RolePrincipal
	m.created = employee
	return nil
}

func (m *mockEmployeeRepo) UpdatePrincipal(ctx context.Context, employee *models.Employee, passwordHash *string) error {
	m.updatedHash = passwordHash
	return m.updateErr
}

func (m *mockEmployeeRepo) DeletePrincipal(ctx context.Context, id int64) error {
	return m.deleteErr
}

type mockTeacherRepo struct {
	teachers    map[int64]*models.Teacher
	created     *models.Teacher
	createErr   error
	updateErr   error
	updatedHash *string
	deleteErr   error
	listFilter  models.TeacherFilter
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	m.listFilter = filter
	return []models.Teacher{}, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.createErr != nil {
		return m.createErr
	}
	teacher.ID = 7
	teacher.Role = models.RoleTeacher
	m.created = teacher
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher, passwordHash *string) error {
	m.updatedHash = passwordHash
	return m.updateErr
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}
