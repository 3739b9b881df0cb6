package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const markColumns = `id, mark, student_id, subject_id, teacher_id, time`

// MarkRepository persists marks. Marks are append-only.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs a MarkRepository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// List returns marks matching the filter, newest first.
func (r *MarkRepository) List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error) {
	var w whereBuilder
	w.addIDs("student_id", filter.StudentIDs)
	w.addIDs("teacher_id", filter.TeacherIDs)
	w.addIDs("subject_id", filter.SubjectIDs)
	if filter.Least != nil {
		w.add("mark >= $%d", *filter.Least)
	}
	if filter.Most != nil {
		w.add("mark <= $%d", *filter.Most)
	}
	if filter.After != nil {
		w.add("time >= $%d", *filter.After)
	}
	if filter.Before != nil {
		w.add("time <= $%d", *filter.Before)
	}

	query := `SELECT ` + markColumns + ` FROM marks` + w.where() + ` ORDER BY time DESC, id DESC` + w.page(filter.Count, filter.Offset)
	marks := make([]models.Mark, 0)
	if err := r.db.SelectContext(ctx, &marks, query, w.args...); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// Create inserts a mark and fills in its id and timestamp.
func (r *MarkRepository) Create(ctx context.Context, mark *models.Mark) error {
	query := `INSERT INTO marks (mark, student_id, subject_id, teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + markColumns
	if err := r.db.GetContext(ctx, mark, query, mark.Mark, mark.StudentID, mark.SubjectID, mark.TeacherID); err != nil {
		return fmt.Errorf("create mark: %w", err)
	}
	return nil
}
