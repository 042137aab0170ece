package services

//go:generate mockgen -source=rooms.go -destination=mocks/rooms.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
)

const (
	roomCodeLength   = 6
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeAttempts = 5
)

type Rooms struct {
	log         *slog.Logger
	storage     RoomStorage
	polls       RoomPolls
	broadcaster Broadcaster
}

type RoomStorage interface {
	SaveRoom(ctx context.Context, room entity.Room) error
	Room(ctx context.Context, code string) (entity.Room, error)
	EndRoom(ctx context.Context, code string, endedAt time.Time) (entity.Room, error)
	RoomsByTeacher(ctx context.Context, teacherID string, status entity.RoomStatus) ([]entity.Room, error)
}

// RoomPolls closes the live polls of a room.
type RoomPolls interface {
	EndRoomPolls(ctx context.Context, roomCode string) int
}

func NewRooms(log *slog.Logger, storage RoomStorage, polls RoomPolls, broadcaster Broadcaster) *Rooms {
	return &Rooms{
		log:         log,
		storage:     storage,
		polls:       polls,
		broadcaster: broadcaster,
	}
}

func (r *Rooms) CreateRoom(ctx context.Context, name, teacherID string) (entity.Room, error) {
	const op = "Rooms.CreateRoom"

	log := r.log.With(slog.String("op", op), slog.String("teacher_id", teacherID))

	name = strings.TrimSpace(name)
	if name == "" || teacherID == "" {
		return entity.Room{}, fmt.Errorf("%s: %w: name and teacher id are required", op, ErrValidation)
	}

	for attempt := 0; attempt < roomCodeAttempts; attempt++ {
		room := entity.Room{
			Code:      newRoomCode(),
			Name:      name,
			TeacherID: teacherID,
			Status:    entity.RoomStatusActive,
			CreatedAt: time.Now().UTC(),
		}

		err := r.storage.SaveRoom(ctx, room)
		if err == nil {
			log.Info("room created", slog.String("room", room.Code))
			return room, nil
		}
		if !errors.Is(err, repo.ErrRoomExists) {
			log.Error("failed to save room", sl.Err(err))
			return entity.Room{}, fmt.Errorf("%s: %w", op, err)
		}
		log.Debug("room code taken, retrying", slog.String("room", room.Code))
	}

	return entity.Room{}, fmt.Errorf("%s: %w", op, repo.ErrRoomExists)
}

// GetRoom returns the room whatever its status.
func (r *Rooms) GetRoom(ctx context.Context, code string) (entity.Room, error) {
	const op = "Rooms.GetRoom"

	room, err := r.storage.Room(ctx, code)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return entity.Room{}, fmt.Errorf("%s: %w", op, ErrRoomNotFound)
		}
		return entity.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (r *Rooms) ListRooms(ctx context.Context, teacherID string, status entity.RoomStatus) ([]entity.Room, error) {
	const op = "Rooms.ListRooms"

	switch status {
	case "", entity.RoomStatusActive, entity.RoomStatusEnded:
	default:
		return nil, fmt.Errorf("%s: %w: unknown room status %q", op, ErrValidation, status)
	}

	rooms, err := r.storage.RoomsByTeacher(ctx, teacherID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

// EndRoom marks the room ended, closes its open polls and tells the room.
// Ending an ended room repeats the broadcast and nothing else.
func (r *Rooms) EndRoom(ctx context.Context, code string) (entity.Room, error) {
	const op = "Rooms.EndRoom"

	log := r.log.With(slog.String("op", op), slog.String("room", code))

	room, err := r.storage.EndRoom(ctx, code, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			log.Warn("room not found", sl.Err(err))
			return entity.Room{}, fmt.Errorf("%s: %w", op, ErrRoomNotFound)
		}
		log.Error("failed to end room", sl.Err(err))
		return entity.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	closed := r.polls.EndRoomPolls(ctx, code)

	endedAt := time.Now().UTC()
	if room.EndedAt != nil {
		endedAt = *room.EndedAt
	}
	r.broadcaster.Emit(code, EventRoomEnded, RoomEnded{RoomCode: code, EndedAt: endedAt})

	log.Info("room ended", slog.Int("polls_closed", closed))

	return room, nil
}

func newRoomCode() string {
	id := uuid.New()
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[int(id[i])%len(roomCodeAlphabet)]
	}
	return string(code)
}
