package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type mockMarkRepo struct {
	marks   []models.Mark
	filter  models.MarkFilter
	created *models.Mark
	listErr error
}

func (m *mockMarkRepo) List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error) {
	m.filter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.marks, nil
}

func (m *mockMarkRepo) Create(ctx context.Context, mark *models.Mark) error {
	mark.ID = 1
	mark.Time = time.Now().UTC()
	m.created = mark
	return nil
}

func TestMarkServiceTeacherGradesAsThemselves(t *testing.T) {
	repo := &mockMarkRepo{}
	svc := NewMarkService(repo, nil, nil, nil)
	spoofed := int64(99)

	mark, err := svc.Create(context.Background(),
		models.Claims{EmployeeID: 7, Role: models.RoleTeacher},
		CreateMarkRequest{TeacherID: &spoofed, StudentID: 2, SubjectID: 1, Mark: 4},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(7), mark.TeacherID)
	assert.Equal(t, int64(7), repo.created.TeacherID)
	assert.Equal(t, int16(4), repo.created.Mark)
}

func TestMarkServicePrincipalNeedsTeacherID(t *testing.T) {
	repo := &mockMarkRepo{}
	svc := NewMarkService(repo, nil, nil, nil)
	principal := models.Claims{EmployeeID: 3, Role: models.RolePrincipal}

	_, err := svc.Create(context.Background(), principal, CreateMarkRequest{StudentID: 2, SubjectID: 1, Mark: 5})
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr.Field)
	assert.Equal(t, "teacher_id", *appErr.Field)
	assert.Nil(t, repo.created)

	teacherID := int64(7)
	mark, err := svc.Create(context.Background(), principal, CreateMarkRequest{TeacherID: &teacherID, StudentID: 2, SubjectID: 1, Mark: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), mark.TeacherID)
}

func TestMarkServiceRejectsOutOfRange(t *testing.T) {
	svc := NewMarkService(&mockMarkRepo{}, nil, nil, nil)
	teacher := models.Claims{EmployeeID: 7, Role: models.RoleTeacher}

	for _, value := range []int16{0, 1, 6} {
		_, err := svc.Create(context.Background(), teacher, CreateMarkRequest{StudentID: 2, SubjectID: 1, Mark: value})
		appErr := appErrors.FromError(err)
		assert.Equal(t, "Оценка должна быть от 2 до 5", appErr.Message)
	}
}

func TestMarkServiceListDefaults(t *testing.T) {
	repo := &mockMarkRepo{}
	svc := NewMarkService(repo, nil, nil, nil)

	_, err := svc.List(context.Background(), models.MarkFilter{StudentIDs: []int64{2}}, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.filter.Count)

	count := 10000
	_, err = svc.List(context.Background(), models.MarkFilter{}, models.PageRequest{Count: &count})
	require.NoError(t, err)
	assert.Equal(t, 500, repo.filter.Count)
}

func TestExportServiceCSV(t *testing.T) {
	at := time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)
	repo := &mockMarkRepo{marks: []models.Mark{{ID: 1, Mark: 5, StudentID: 2, SubjectID: 3, TeacherID: 7, Time: at}}}
	svc := NewExportService(repo, nil, nil)
	svc.now = func() time.Time { return at }

	result, err := svc.ExportMarks(context.Background(), models.MarkFilter{}, models.PageRequest{}, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "marks-20240902-100000.csv", result.Filename)
	assert.True(t, strings.HasPrefix(result.ContentType, "text/csv"))
	assert.Contains(t, string(result.Data), "1;2;3;7;5;2024-09-02T10:00:00Z")
	assert.Equal(t, 500, repo.filter.Count)
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&mockMarkRepo{}, nil, nil)

	result, err := svc.ExportMarks(context.Background(), models.MarkFilter{}, models.PageRequest{}, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF-")))
}

func TestExportServiceErrors(t *testing.T) {
	svc := NewExportService(&mockMarkRepo{listErr: errors.New("db down")}, nil, nil)

	_, err := svc.ExportMarks(context.Background(), models.MarkFilter{}, models.PageRequest{}, ExportFormat("xlsx"))
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr.Field)
	assert.Equal(t, "format", *appErr.Field)

	_, err = svc.ExportMarks(context.Background(), models.MarkFilter{}, models.PageRequest{}, ExportCSV)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
