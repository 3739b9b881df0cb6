package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
)

func newMarkHandler(repo *markRepoStub) *MarkHandler {
	return NewMarkHandler(service.NewMarkService(repo, nil, nil, nil), service.NewExportService(repo, nil, nil))
}

func TestMarkHandlerCreateUsesSessionTeacher(t *testing.T) {
	repo := &markRepoStub{}
	h := newMarkHandler(repo)
	c, w := newTestContext(http.MethodPost, "/marks", `{"teacher_id":99,"student_id":3,"subject_id":1,"mark":4}`)
	withClaims(c, 7, models.RoleTeacher)

	h.Create(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(7), repo.created.TeacherID)
	assert.Contains(t, string(decodeEnvelope(t, w)["data"]), `"teacher_id":7`)
}

func TestMarkHandlerCreatePrincipalNeedsTeacher(t *testing.T) {
	h := newMarkHandler(&markRepoStub{})
	c, w := newTestContext(http.MethodPost, "/marks", `{"student_id":3,"subject_id":1,"mark":4}`)
	withClaims(c, 1, models.RolePrincipal)

	h.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	require.NotNil(t, body.Field)
	assert.Equal(t, "teacher_id", *body.Field)
}

func TestMarkHandlerCreateOutOfRange(t *testing.T) {
	h := newMarkHandler(&markRepoStub{})
	c, w := newTestContext(http.MethodPost, "/marks", `{"student_id":3,"subject_id":1,"mark":6}`)
	withClaims(c, 7, models.RoleTeacher)

	h.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Оценка должна быть от 2 до 5", decodeError(t, w).Message)
}

func TestMarkHandlerListParsesFilters(t *testing.T) {
	repo := &markRepoStub{}
	h := newMarkHandler(repo)
	target := "/marks?student_ids=1,2&student_ids=3&teachers_ids=4&teacher_ids=5&least=3&most=5" +
		"&after=2024-01-01T00:00:00Z&before=2024-02-01T00:00:00%2B03:00&count=900"
	c, w := newTestContext(http.MethodGet, target, "")

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 2, 3}, repo.filter.StudentIDs)
	assert.ElementsMatch(t, []int64{4, 5}, repo.filter.TeacherIDs)
	require.NotNil(t, repo.filter.Least)
	assert.Equal(t, int16(3), *repo.filter.Least)
	require.NotNil(t, repo.filter.Before)
	assert.True(t, repo.filter.Before.Equal(time.Date(2024, 1, 31, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, service.MarkLimits.MaxCount, repo.filter.Count)
}

func TestMarkHandlerListRejectsBadTime(t *testing.T) {
	h := newMarkHandler(&markRepoStub{})
	c, w := newTestContext(http.MethodGet, "/marks?after=yesterday", "")

	h.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "after")
}

func TestMarkHandlerExportCSV(t *testing.T) {
	repo := &markRepoStub{marks: []models.Mark{{ID: 1, Mark: 5, StudentID: 2, SubjectID: 3, TeacherID: 4, Time: time.Now()}}}
	h := newMarkHandler(repo)
	c, w := newTestContext(http.MethodGet, "/marks/export?format=csv&subject_ids=3", "")
	withClaims(c, 4, models.RoleTeacher)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"marks-")
	assert.Equal(t, []int64{3}, repo.filter.SubjectIDs)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestMarkHandlerExportUnknownFormat(t *testing.T) {
	h := newMarkHandler(&markRepoStub{})
	c, w := newTestContext(http.MethodGet, "/marks/export?format=xlsx", "")
	withClaims(c, 4, models.RoleTeacher)

	h.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	require.NotNil(t, body.Field)
	assert.Equal(t, "format", *body.Field)
}
