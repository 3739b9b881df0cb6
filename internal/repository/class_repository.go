package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// ClassRepository persists classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes matching the filter.
func (r *ClassRepository) List(ctx context.Context, filter models.NamedFilter) ([]models.Class, error) {
	var w whereBuilder
	w.addID("id", filter.ID)
	w.addSearch("class", filter.Name)

	query := `SELECT id, class FROM classes` + w.where() + ` ORDER BY id` + w.page(filter.Count, filter.Offset)
	classes := make([]models.Class, 0)
	if err := r.db.SelectContext(ctx, &classes, query, w.args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Create inserts a class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (class) VALUES ($1) RETURNING id, class`
	if err := r.db.GetContext(ctx, class, query, class.Name); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update renames a class. sql.ErrNoRows is returned when nothing matched.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	const query = `UPDATE classes SET class = $2 WHERE id = $1 RETURNING id, class`
	if err := r.db.GetContext(ctx, class, query, class.ID, class.Name); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class. sql.ErrNoRows is returned when nothing matched.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return expectAffected(res)
}
