package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/security"
)

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewAuthHandler(&authServiceMock{session: &models.Session{Token: "signed", ExpiresAt: expires}})
	c, w := newTestContext(http.MethodPost, "/auth/login", `{"phone":"+100","password":"secret"}`)

	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null,"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)

	session := cookies[1]
	assert.Equal(t, middleware.SessionCookie, session.Name)
	assert.Equal(t, "signed", session.Value)
	assert.Equal(t, "/", session.Path)
	assert.True(t, session.HttpOnly)
	assert.True(t, session.Secure)
	assert.True(t, expires.Equal(session.Expires))
}

type credentialStore struct {
	creds map[string]*models.Credentials
}

func (s *credentialStore) FindCredentialsByPhone(ctx context.Context, phone string) (*models.Credentials, error) {
	if c, ok := s.creds[phone]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *credentialStore) FindPrincipal(ctx context.Context, id int64) (*models.Employee, error) {
	return nil, sql.ErrNoRows
}

func (s *credentialStore) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return nil, sql.ErrNoRows
}

func TestAuthHandlerLoginFailuresShareOnePayload(t *testing.T) {
	hasher := security.NewPasswordHasher(security.Argon2Params{Memory: 1024, Time: 1, Threads: 1})
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	store := &credentialStore{creds: map[string]*models.Credentials{
		"+100": {ID: 7, PasswordHash: hash, Role: models.RoleTeacher},
	}}
	svc, err := service.NewAuthService(store, store, hasher, security.NewTokenCodec([]byte("test-secret")), nil, nil, nil, service.AuthConfig{})
	require.NoError(t, err)
	h := NewAuthHandler(svc)

	var bodies []string
	for _, body := range []string{
		`{"phone":"+100","password":"wrong"}`,
		`{"phone":"+999","password":"wrong"}`,
	} {
		c, w := newTestContext(http.MethodPost, "/auth/login", body)

		h.Login(c)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Result().Cookies())
		bodies = append(bodies, w.Body.String())
	}
	assert.JSONEq(t, `{"message":"Неправильный телефон или пароль","field":null,"success":false}`, bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuthHandlerLoginRejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	c, w := newTestContext(http.MethodPost, "/auth/login", `{"phone":`)

	h.Login(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "Некорректный запрос")
}

func TestAuthHandlerLogoutIsIdempotent(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	var responses []string
	for i := 0; i < 2; i++ {
		c, w := newTestContext(http.MethodPost, "/auth/logout", "")
		h.Logout(c)

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0)
		responses = append(responses, w.Body.String()+w.Header().Get("Set-Cookie"))
	}
	assert.Equal(t, responses[0], responses[1])
}

func TestAuthHandlerMe(t *testing.T) {
	mock := &authServiceMock{profile: &models.Employee{ID: 5, FirstName: "Анна", Role: models.RolePrincipal}}
	h := NewAuthHandler(mock)
	c, w := newTestContext(http.MethodGet, "/auth/me", "")
	withClaims(c, 5, models.RolePrincipal)

	h.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), mock.meClaims.EmployeeID)
	assert.Contains(t, string(decodeEnvelope(t, w)["data"]), `"first_name":"Анна"`)
}

func TestAuthHandlerMeDeletedEmployee(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{meErr: service.ErrUserNotFound})
	c, w := newTestContext(http.MethodGet, "/auth/me", "")
	withClaims(c, 5, models.RoleTeacher)

	h.Me(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Пользователь не найден", decodeError(t, w).Message)
}

func TestAuthHandlerMeWithoutSession(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	c, w := newTestContext(http.MethodGet, "/auth/me", "")

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
