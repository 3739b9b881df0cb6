package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/security"
)

type nameRepo struct{}

func (nameRepo) List(ctx context.Context, filter models.NamedFilter) ([]models.Subject, error) {
	return []models.Subject{}, nil
}
func (nameRepo) Create(ctx context.Context, subject *models.Subject) error {
	subject.ID = 1
	return nil
}
func (nameRepo) Update(ctx context.Context, subject *models.Subject) error { return nil }
func (nameRepo) Delete(ctx context.Context, id int64) error { return nil }

type markRepo struct{}

func (markRepo) List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error) {
	return []models.Mark{}, nil
}
func (markRepo) Create(ctx context.Context, mark *models.Mark) error {
	mark.ID = 1
	return nil
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *security.TokenCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	codec := security.NewTokenCodec([]byte("router-secret"))
	metrics := service.NewMetricsService()
	subjects := service.NewSubjectService(nameRepo{}, nil, nil, metrics)
	marks := service.NewMarkService(markRepo{}, nil, nil, metrics)

	handlers := Handlers{
		Subjects: handler.NewSubjectHandler(subjects),
		Marks:    handler.NewMarkHandler(marks, service.NewExportService(markRepo{}, nil, metrics)),
		Health:   handler.NewHealthHandler(okPinger{}),
		Metrics:  handler.NewMetricsHandler(metrics),
		Auth:     handler.NewAuthHandler(nil),
	}
	// Routes of resources not exercised here still need non-nil handlers.
	handlers.Classes = &handler.ClassHandler{}
	handlers.Rooms = &handler.RoomHandler{}
	handlers.Students = &handler.StudentHandler{}
	handlers.Teachers = &handler.TeacherHandler{}
	handlers.Principals = &handler.PrincipalHandler{}

	router := NewRouter(handlers, middleware.Session(codec), metrics, zap.NewNop(), Options{EnableMetrics: true})
	return router, codec
}

func sessionCookie(t *testing.T, codec *security.TokenCodec, role models.Role) *http.Cookie {
	t.Helper()
	token, err := codec.Encode(models.Claims{EmployeeID: 2, Role: role, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func TestRouterListingsArePublic(t *testing.T) {
	router, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"success":true}`, w.Body.String())
}

func TestRouterWritesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(`{"name":"Math"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Необходима авторизация","field":null,"success":false}`, w.Body.String())
}

func TestRouterAdministrationNeedsPrincipal(t *testing.T) {
	router, codec := newTestRouter(t)

	for role, status := range map[models.Role]int{
		models.RoleTeacher:   http.StatusForbidden,
		models.RolePrincipal: http.StatusOK,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(`{"name":"Math"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sessionCookie(t, codec, role))
		router.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code, string(role))
	}
}

func TestRouterRejectsUnknownFields(t *testing.T) {
	router, codec := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(`{"name":"Math","color":"red"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, codec, models.RolePrincipal))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterTeachersMayGrade(t *testing.T) {
	router, codec := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/marks", strings.NewReader(`{"student_id":1,"subject_id":1,"mark":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, codec, models.RoleTeacher))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterProbesAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouterDocsOnlyWhenEnabled(t *testing.T) {
	router, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
