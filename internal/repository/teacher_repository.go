package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const teacherSelect = `SELECT e.id, e.first_name, e.last_name, e.middle_name, e.employed_at, e.phone, e.mfa, e.role,
	t.subject_id, t.room_id
FROM teachers t
JOIN employees e ON e.id = t.employee_id`

// TeacherRepository manages teachers, stored as an employee row plus a
// linkage row in teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers matching filters.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	var w whereBuilder
	w.conditions = append(w.conditions, "e.role = 'teacher'")
	w.addID("e.id", filter.ID)
	w.addSearch(`(e.first_name || ' ' || e.last_name || ' ' || COALESCE(e.middle_name, ''))`, filter.Name)
	w.addIDs("t.subject_id", filter.SubjectIDs)
	w.addIDs("t.room_id", filter.RoomIDs)

	query := teacherSelect + w.where() + ` ORDER BY e.id` + w.page(filter.Count, filter.Offset)
	teachers := make([]models.Teacher, 0)
	if err := r.db.SelectContext(ctx, &teachers, query, w.args...); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher joined with its linkage row.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := teacherSelect + ` WHERE e.id = $1 AND e.role = 'teacher'`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts the employee row and the linkage row in one transaction.
// Either both rows exist afterwards or neither does.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO employees (first_name, last_name, middle_name, phone, password_hash, role)
			VALUES ($1, $2, $3, $4, $5, 'teacher')
			RETURNING ` + employeeColumns
		if err := tx.GetContext(ctx, &teacher.Employee, query,
			teacher.FirstName, teacher.LastName, teacher.MiddleName, teacher.Phone, teacher.PasswordHash,
		); err != nil {
			return fmt.Errorf("insert teacher employee: %w", err)
		}

		const linkQuery = `INSERT INTO teachers (employee_id, subject_id, room_id) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, linkQuery, teacher.ID, teacher.SubjectID, teacher.RoomID); err != nil {
			return fmt.Errorf("insert teacher link: %w", err)
		}
		return nil
	})
}

// Update rewrites the employee row and the linkage row in one transaction.
// A nil passwordHash keeps the stored hash. sql.ErrNoRows is returned when no
// teacher has the id.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher, passwordHash *string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE employees
			SET first_name = $2, last_name = $3, middle_name = $4, phone = $5,
				password_hash = COALESCE($6, password_hash)
			WHERE id = $1 AND role = 'teacher'
			RETURNING ` + employeeColumns
		if err := tx.GetContext(ctx, &teacher.Employee, query,
			teacher.ID, teacher.FirstName, teacher.LastName, teacher.MiddleName, teacher.Phone, passwordHash,
		); err != nil {
			return fmt.Errorf("update teacher employee: %w", err)
		}

		const linkQuery = `UPDATE teachers SET subject_id = $2, room_id = $3 WHERE employee_id = $1`
		if _, err := tx.ExecContext(ctx, linkQuery, teacher.ID, teacher.SubjectID, teacher.RoomID); err != nil {
			return fmt.Errorf("update teacher link: %w", err)
		}
		return nil
	})
}

// Delete removes a teacher; the linkage row follows through ON DELETE CASCADE.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1 AND role = 'teacher'`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return expectAffected(res)
}
