package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestOKWrapsPayload(t *testing.T) {
	c, w := newContext()
	OK(c, map[string]int{"id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"id":1},"success":true}`, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestOKWithNilData(t *testing.T) {
	c, w := newContext()
	OK(c, nil)

	assert.JSONEq(t, `{"data":null,"success":true}`, w.Body.String())
}

func TestErrorCarriesField(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.WithField(appErrors.Clone(appErrors.ErrValidation, "Оценка должна быть от 2 до 5"), "mark"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Оценка должна быть от 2 до 5","field":"mark","success":false}`, w.Body.String())
}

func TestErrorHidesInternalDetails(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Внутренняя серверная ошибка, обратитесь к администрации","field":null,"success":false}`, w.Body.String())
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0].Error(), "password authentication failed")
}

func TestAbortStopsChain(t *testing.T) {
	c, w := newContext()
	Abort(c, appErrors.ErrForbidden)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
