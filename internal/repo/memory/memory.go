package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
)

// Storage keeps rooms and the poll log in process memory. It is used when no
// database is configured and in tests.
type Storage struct {
	mu      sync.Mutex
	rooms   map[string]entity.Room
	polls   map[string]entity.PollRecord
	answers []entity.AnswerRecord
	nextID  int64
}

func New() *Storage {
	return &Storage{
		rooms: make(map[string]entity.Room),
		polls: make(map[string]entity.PollRecord),
	}
}

func (s *Storage) Close() error { return nil }

func (s *Storage) SaveRoom(_ context.Context, room entity.Room) error {
	const op = "storage.memory.SaveRoom"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[room.Code]; exists {
		return fmt.Errorf("%s: %w", op, repo.ErrRoomExists)
	}
	s.rooms[room.Code] = room
	return nil
}

func (s *Storage) Room(_ context.Context, code string) (entity.Room, error) {
	const op = "storage.memory.Room"

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return entity.Room{}, fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
	}
	return room, nil
}

func (s *Storage) EndRoom(_ context.Context, code string, endedAt time.Time) (entity.Room, error) {
	const op = "storage.memory.EndRoom"

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return entity.Room{}, fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
	}
	room.Status = entity.RoomStatusEnded
	if room.EndedAt == nil {
		room.EndedAt = &endedAt
	}
	s.rooms[code] = room
	return room, nil
}

func (s *Storage) RoomsByTeacher(_ context.Context, teacherID string, status entity.RoomStatus) ([]entity.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rooms []entity.Room
	for _, room := range s.rooms {
		if room.TeacherID != teacherID {
			continue
		}
		if status != "" && room.Status != status {
			continue
		}
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})
	return rooms, nil
}

func (s *Storage) SavePollRecord(_ context.Context, rec entity.PollRecord) error {
	const op = "storage.memory.SavePollRecord"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[rec.RoomCode]; !ok {
		return fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
	}
	if _, exists := s.polls[rec.ID]; exists {
		return fmt.Errorf("%s: %w", op, repo.ErrPollExists)
	}
	rec.Options = append([]string(nil), rec.Options...)
	s.polls[rec.ID] = rec
	return nil
}

func (s *Storage) SaveAnswerRecord(_ context.Context, rec entity.AnswerRecord) (int64, error) {
	const op = "storage.memory.SaveAnswerRecord"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.polls[rec.PollID]; !ok {
		return 0, fmt.Errorf("%s: %w", op, repo.ErrPollNotFound)
	}
	s.nextID++
	rec.ID = s.nextID
	s.answers = append(s.answers, rec)
	return rec.ID, nil
}

func (s *Storage) PollRecords(_ context.Context, roomCode string) ([]entity.PollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []entity.PollRecord
	for _, rec := range s.polls {
		if rec.RoomCode == roomCode {
			rec.Options = append([]string(nil), rec.Options...)
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// AnswerRecords returns the room's answers in the order they were saved.
func (s *Storage) AnswerRecords(_ context.Context, roomCode string) ([]entity.AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []entity.AnswerRecord
	for _, rec := range s.answers {
		if s.polls[rec.PollID].RoomCode == roomCode {
			records = append(records, rec)
		}
	}
	return records, nil
}
