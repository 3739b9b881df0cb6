package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// RoomRepository persists rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns rooms matching the filter.
func (r *RoomRepository) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	var w whereBuilder
	w.addID("id", filter.ID)
	w.addSearch("room", filter.Name)
	w.addIDs("subject_id", filter.SubjectIDs)

	query := `SELECT id, room, subject_id FROM rooms` + w.where() + ` ORDER BY id` + w.page(filter.Count, filter.Offset)
	rooms := make([]models.Room, 0)
	if err := r.db.SelectContext(ctx, &rooms, query, w.args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const query = `INSERT INTO rooms (room, subject_id) VALUES ($1, $2) RETURNING id, room, subject_id`
	if err := r.db.GetContext(ctx, room, query, room.Name, room.SubjectID); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update rewrites a room. sql.ErrNoRows is returned when nothing matched.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	const query = `UPDATE rooms SET room = $2, subject_id = $3 WHERE id = $1 RETURNING id, room, subject_id`
	if err := r.db.GetContext(ctx, room, query, room.ID, room.Name, room.SubjectID); err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete removes a room. sql.ErrNoRows is returned when nothing matched.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return expectAffected(res)
}
