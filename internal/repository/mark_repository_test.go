package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

var markRowColumns = []string{"id", "mark", "student_id", "subject_id", "teacher_id", "time"}

func TestMarkRepositoryListAppliesRanges(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	least, most := int16(3), int16(4)
	after := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM marks WHERE teacher_id = ANY($1) AND mark >= $2 AND mark <= $3 AND time >= $4 AND time <= $5 ORDER BY time DESC, id DESC LIMIT $6 OFFSET $7")).
		WithArgs(sqlmock.AnyArg(), least, most, after, before, 100, 0).
		WillReturnRows(sqlmock.NewRows(markRowColumns).AddRow(1, 4, 2, 3, 7, after.Add(time.Hour)))

	marks, err := repo.List(context.Background(), models.MarkFilter{
		TeacherIDs: []int64{7},
		Least:      &least,
		Most:       &most,
		After:      &after,
		Before:     &before,
		Count:      100,
	})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, int16(4), marks[0].Mark)
	assert.Equal(t, int64(7), marks[0].TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO marks").
		WithArgs(int16(4), int64(2), int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows(markRowColumns).AddRow(11, 4, 2, 3, 7, now))

	mark := &models.Mark{Mark: 4, StudentID: 2, SubjectID: 3, TeacherID: 7}
	require.NoError(t, repo.Create(context.Background(), mark))
	assert.Equal(t, int64(11), mark.ID)
	assert.Equal(t, now, mark.Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}
