package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// RoomLimits bounds room listings.
var RoomLimits = models.PageLimits{DefaultCount: 50, MaxCount: 100, MaxOffset: 5000}

var (
	errRoomUpdateMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Кабинета с таким ИД не существует")
	errRoomDeleteMissing = appErrors.Clone(appErrors.ErrTargetNotFound, "Такого кабинета не существует")
)

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
}

// RoomRequest is the payload for creating or updating rooms.
type RoomRequest struct {
	Name      string `json:"name" validate:"required,max=64"`
	SubjectID *int64 `json:"subject_id" validate:"omitempty,gt=0"`
}

// RoomService orchestrates room operations.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *RoomService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns rooms matching the filter.
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter, page models.PageRequest) ([]models.Room, error) {
	filter.Count, filter.Offset = RoomLimits.Clamp(page.Count, page.Offset)
	defer s.metrics.observeSince("rooms_list", time.Now())

	rooms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, nil, nil)
	}
	return rooms, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req RoomRequest) (*models.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	room := &models.Room{Name: req.Name, SubjectID: req.SubjectID}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, storeError(err, nil, nil)
	}
	return room, nil
}

// Update rewrites a room.
func (s *RoomService) Update(ctx context.Context, id int64, req RoomRequest) (*models.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	room := &models.Room{ID: id, Name: req.Name, SubjectID: req.SubjectID}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, storeError(err, errRoomUpdateMissing, nil)
	}
	return room, nil
}

// Delete removes a room. Teachers assigned to it keep no room.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, errRoomDeleteMissing)
	}
	s.logger.Info("room deleted", zap.Int64("room_id", id))
	return nil
}
