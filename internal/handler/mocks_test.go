package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type authServiceMock struct {
	session  *models.Session
	loginErr error
	profile  interface{}
	meErr    error
	meClaims models.Claims
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.session, nil
}

func (m *authServiceMock) Me(ctx context.Context, claims models.Claims) (interface{}, error) {
	m.meClaims = claims
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.profile, nil
}

type subjectRepoStub struct {
	filter    models.NamedFilter
	createErr error
	updateErr error
	deleteErr error
}

func (s *subjectRepoStub) List(ctx context.Context, filter models.NamedFilter) ([]models.Subject, error) {
	s.filter = filter
	return []models.Subject{{ID: 1, Name: "Математика"}}, nil
}

func (s *subjectRepoStub) Create(ctx context.Context, subject *models.Subject) error {
	if s.createErr != nil {
		return s.createErr
	}
	subject.ID = 1
	return nil
}

func (s *subjectRepoStub) Update(ctx context.Context, subject *models.Subject) error {
	return s.updateErr
}

func (s *subjectRepoStub) Delete(ctx context.Context, id int64) error {
	return s.deleteErr
}

type markRepoStub struct {
	filter  models.MarkFilter
	created *models.Mark
	marks   []models.Mark
}

func (s *markRepoStub) List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error) {
	s.filter = filter
	if s.marks == nil {
		return []models.Mark{}, nil
	}
	return s.marks, nil
}

func (s *markRepoStub) Create(ctx context.Context, mark *models.Mark) error {
	mark.ID = 11
	s.created = mark
	return nil
}

type teacherServiceMock struct {
	filter    models.TeacherFilter
	page      models.PageRequest
	updatedID int64
	update    service.UpdateTeacherRequest
}

func (m *teacherServiceMock) List(ctx context.Context, filter models.TeacherFilter, page models.PageRequest) ([]models.Teacher, error) {
	m.filter = filter
	m.page = page
	return []models.Teacher{}, nil
}

func (m *teacherServiceMock) Create(ctx context.Context, req service.CreateTeacherRequest) (*models.Teacher, error) {
	return &models.Teacher{Employee: models.Employee{ID: 1, FirstName: req.FirstName, Role: models.RoleTeacher}, SubjectID: req.SubjectID, RoomID: req.RoomID}, nil
}

func (m *teacherServiceMock) Update(ctx context.Context, id int64, req service.UpdateTeacherRequest) (*models.Teacher, error) {
	m.updatedID = id
	m.update = req
	return &models.Teacher{Employee: models.Employee{ID: id}}, nil
}

func (m *teacherServiceMock) Delete(ctx context.Context, id int64) error {
	return sql.ErrNoRows
}

func newTestContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func withClaims(c *gin.Context, id int64, role models.Role) {
	c.Set(middleware.ContextClaimsKey, &models.Claims{EmployeeID: id, Role: role})
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorEnvelope {
	t.Helper()
	var body response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
