package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const studentColumns = `id, first_name, last_name, middle_name, enrolled_at, class_id, phone`

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var w whereBuilder
	w.addID("id", filter.ID)
	w.addSearch(employeeNameExpr, filter.Name)
	w.addIDs("class_id", filter.ClassIDs)

	query := `SELECT ` + studentColumns + ` FROM students` + w.where() + ` ORDER BY id` + w.page(filter.Count, filter.Offset)
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, w.args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Create inserts a student and fills in generated columns.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `INSERT INTO students (first_name, last_name, middle_name, class_id, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + studentColumns
	if err := r.db.GetContext(ctx, student, query,
		student.FirstName, student.LastName, student.MiddleName, student.ClassID, student.Phone, student.PasswordHash,
	); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update rewrites a student. A nil passwordHash keeps the stored hash.
// sql.ErrNoRows is returned when no student has the id.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student, passwordHash *string) error {
	query := `UPDATE students
		SET first_name = $2, last_name = $3, middle_name = $4, class_id = $5, phone = $6,
			password_hash = COALESCE($7, password_hash)
		WHERE id = $1
		RETURNING ` + studentColumns
	if err := r.db.GetContext(ctx, student, query,
		student.ID, student.FirstName, student.LastName, student.MiddleName, student.ClassID, student.Phone, passwordHash,
	); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student. sql.ErrNoRows is returned when nothing matched.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res)
}
