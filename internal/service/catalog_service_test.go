package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type mockSubjectRepo struct {
	nextID    int64
	names     map[string]bool
	listErr   error
	updateErr error
	deleteErr error
	filter    models.NamedFilter
}

func (m *mockSubjectRepo) List(ctx context.Context, filter models.NamedFilter) ([]models.Subject, error) {
	m.filter = filter
	return []models.Subject{}, m.listErr
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if m.names[subject.Name] {
		return &pq.Error{Code: "23505", Constraint: "subjects_subject_key"}
	}
	if m.names == nil {
		m.names = map[string]bool{}
	}
	m.names[subject.Name] = true
	m.nextID++
	subject.ID = m.nextID
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	return m.updateErr
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}

func TestSubjectServiceCreateTwice(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	subject, err := svc.Create(context.Background(), NameRequest{Name: "Math"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), subject.ID)

	_, err = svc.Create(context.Background(), NameRequest{Name: "Math"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Такой предмет уже существует", appErr.Message)
	assert.Nil(t, appErr.Field)
}

func TestSubjectServiceCreateBlankName(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), NameRequest{Name: "   "})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotNil(t, appErr.Field)
	assert.Equal(t, "name", *appErr.Field)
}

func TestSubjectServiceMissingTargets(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{updateErr: sql.ErrNoRows, deleteErr: sql.ErrNoRows}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 3, NameRequest{Name: "Physics"})
	assert.Equal(t, "Предмета с таким ИД не существует", appErrors.FromError(err).Message)

	err = svc.Delete(context.Background(), 3)
	assert.Equal(t, "Такого предмета не существует", appErrors.FromError(err).Message)
}

func TestSubjectServiceDeleteReferenced(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{deleteErr: &pq.Error{Code: "23503", Constraint: "teachers_subject_id_fkey"}}, nil, nil, nil)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, appErrors.ErrInUse)
}

func TestSubjectServiceListStoreFailureIsInternal(t *testing.T) {
	repo := &mockSubjectRepo{listErr: errors.New("timeout")}
	svc := NewSubjectService(repo, nil, nil, nil)
	count := 10000

	_, err := svc.List(context.Background(), models.NamedFilter{}, models.PageRequest{Count: &count})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, 50, repo.filter.Count)
}

type mockClassRepo struct {
	createErr error
}

func (m *mockClassRepo) List(ctx context.Context, filter models.NamedFilter) ([]models.Class, error) {
	return []models.Class{{ID: 1, Name: "10A"}}, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	return m.createErr
}

func (m *mockClassRepo) Update(ctx context.Context, class *models.Class) error {
	return sql.ErrNoRows
}

func (m *mockClassRepo) Delete(ctx context.Context, id int64) error {
	return sql.ErrNoRows
}

func TestClassServiceErrors(t *testing.T) {
	svc := NewClassService(&mockClassRepo{createErr: &pq.Error{Code: "23505", Constraint: "classes_class_key"}}, nil, nil, nil)

	_, err := svc.Create(context.Background(), NameRequest{Name: "10A"})
	assert.Equal(t, "Такой класс уже существует", appErrors.FromError(err).Message)

	_, err = svc.Update(context.Background(), 2, NameRequest{Name: "10B"})
	assert.Equal(t, "Класса с таким ИД не существует", appErrors.FromError(err).Message)

	err = svc.Delete(context.Background(), 2)
	assert.Equal(t, "Такого класса не существует", appErrors.FromError(err).Message)
}

type mockRoomRepo struct {
	filter    models.RoomFilter
	createErr error
}

func (m *mockRoomRepo) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	m.filter = filter
	return []models.Room{}, nil
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.createErr != nil {
		return m.createErr
	}
	room.ID = 1
	return nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *models.Room) error {
	return sql.ErrNoRows
}

func (m *mockRoomRepo) Delete(ctx context.Context, id int64) error {
	return sql.ErrNoRows
}

func TestRoomService(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := NewRoomService(repo, nil, nil, nil)
	subjectID := int64(1)

	room, err := svc.Create(context.Background(), RoomRequest{Name: "101", SubjectID: &subjectID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), room.ID)

	count := 10000
	_, err = svc.List(context.Background(), models.RoomFilter{}, models.PageRequest{Count: &count})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.filter.Count)

	_, err = svc.Update(context.Background(), 5, RoomRequest{Name: "102"})
	assert.Equal(t, "Кабинета с таким ИД не существует", appErrors.FromError(err).Message)

	err = svc.Delete(context.Background(), 5)
	assert.Equal(t, "Такого кабинета не существует", appErrors.FromError(err).Message)

	repo.createErr = &pq.Error{Code: "23503", Constraint: "rooms_subject_id_fkey"}
	_, err = svc.Create(context.Background(), RoomRequest{Name: "103", SubjectID: &subjectID})
	assert.Equal(t, "Предмета с таким ИД не существует", appErrors.FromError(err).Message)
}
