package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"
const foreignKeyViolation = "23503"

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SaveRoom(ctx context.Context, room entity.Room) error {
	const op = "storage.postgres.SaveRoom"

	query := `INSERT INTO rooms (code, name, teacher_id, status, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query, room.Code, room.Name, room.TeacherID, room.Status, room.CreatedAt)
	if err != nil {
		if isPQCode(err, uniqueViolation) {
			return fmt.Errorf("%s: %w", op, repo.ErrRoomExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Room(ctx context.Context, code string) (entity.Room, error) {
	const op = "storage.postgres.Room"

	query := `SELECT code, name, teacher_id, status, created_at, ended_at FROM rooms WHERE code = $1`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Room{}, fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
		}
		return entity.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (s *Storage) EndRoom(ctx context.Context, code string, endedAt time.Time) (entity.Room, error) {
	const op = "storage.postgres.EndRoom"

	query := `UPDATE rooms SET status = $2, ended_at = COALESCE(ended_at, $3)
		WHERE code = $1
		RETURNING code, name, teacher_id, status, created_at, ended_at`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, code, entity.RoomStatusEnded, endedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Room{}, fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
		}
		return entity.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

// RoomsByTeacher lists the teacher's rooms, newest first. An empty status
// matches every room.
func (s *Storage) RoomsByTeacher(ctx context.Context, teacherID string, status entity.RoomStatus) ([]entity.Room, error) {
	const op = "storage.postgres.RoomsByTeacher"

	query := `SELECT code, name, teacher_id, status, created_at, ended_at FROM rooms
		WHERE teacher_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, teacherID, string(status))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rooms []entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return rooms, nil
}

func (s *Storage) SavePollRecord(ctx context.Context, rec entity.PollRecord) error {
	const op = "storage.postgres.SavePollRecord"

	query := `INSERT INTO polls (id, room_code, question, options, correct_option_index, timer_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.RoomCode, rec.Question, pq.Array(rec.Options), rec.CorrectOptionIndex, rec.TimerSeconds, rec.CreatedAt)
	if err != nil {
		switch {
		case isPQCode(err, uniqueViolation):
			return fmt.Errorf("%s: %w", op, repo.ErrPollExists)
		case isPQCode(err, foreignKeyViolation):
			return fmt.Errorf("%s: %w", op, repo.ErrRoomNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveAnswerRecord(ctx context.Context, rec entity.AnswerRecord) (int64, error) {
	const op = "storage.postgres.SaveAnswerRecord"

	query := `INSERT INTO answers (poll_id, user_id, answer_index, answered_at) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, rec.PollID, rec.UserID, rec.AnswerIndex, rec.AnsweredAt).Scan(&id)
	if err != nil {
		if isPQCode(err, foreignKeyViolation) {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrPollNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// PollRecords returns the room's polls in creation order.
func (s *Storage) PollRecords(ctx context.Context, roomCode string) ([]entity.PollRecord, error) {
	const op = "storage.postgres.PollRecords"

	query := `SELECT id, room_code, question, options, correct_option_index, timer_seconds, created_at
		FROM polls WHERE room_code = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, roomCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []entity.PollRecord
	for rows.Next() {
		var rec entity.PollRecord
		if err := rows.Scan(&rec.ID, &rec.RoomCode, &rec.Question, pq.Array(&rec.Options),
			&rec.CorrectOptionIndex, &rec.TimerSeconds, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return records, nil
}

// AnswerRecords returns every answer given in the room, oldest first.
func (s *Storage) AnswerRecords(ctx context.Context, roomCode string) ([]entity.AnswerRecord, error) {
	const op = "storage.postgres.AnswerRecords"

	query := `SELECT a.id, a.poll_id, a.user_id, a.answer_index, a.answered_at
		FROM answers a JOIN polls p ON p.id = a.poll_id
		WHERE p.room_code = $1
		ORDER BY a.answered_at, a.id`

	rows, err := s.db.QueryContext(ctx, query, roomCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []entity.AnswerRecord
	for rows.Next() {
		var rec entity.AnswerRecord
		if err := rows.Scan(&rec.ID, &rec.PollID, &rec.UserID, &rec.AnswerIndex, &rec.AnsweredAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (entity.Room, error) {
	var (
		room    entity.Room
		endedAt sql.NullTime
	)
	if err := row.Scan(&room.Code, &room.Name, &room.TeacherID, &room.Status, &room.CreatedAt, &endedAt); err != nil {
		return entity.Room{}, err
	}
	if endedAt.Valid {
		t := endedAt.Time
		room.EndedAt = &t
	}
	return room, nil
}

func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
