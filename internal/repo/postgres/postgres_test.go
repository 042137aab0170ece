package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabaseEnv = "LIVEPOLL_TEST_DATABASE"

// newTestStorage connects to a migrated database, or skips.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s is not set", testDatabaseEnv)
	}

	s, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func randomCode() string {
	return gofakeit.Regex("[A-Z0-9]{6}")
}

func TestStorage_RoomLifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	room := entity.Room{
		Code:      randomCode(),
		Name:      gofakeit.BookTitle(),
		TeacherID: gofakeit.UUID(),
		Status:    entity.RoomStatusActive,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, s.SaveRoom(ctx, room))
	assert.ErrorIs(t, s.SaveRoom(ctx, room), repo.ErrRoomExists)

	got, err := s.Room(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, room.Name, got.Name)
	assert.True(t, got.Active())
	assert.Nil(t, got.EndedAt)

	ended, err := s.EndRoom(ctx, room.Code, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusEnded, ended.Status)
	assert.NotNil(t, ended.EndedAt)

	rooms, err := s.RoomsByTeacher(ctx, room.TeacherID, entity.RoomStatusEnded)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.Code, rooms[0].Code)

	_, err = s.Room(ctx, "------")
	assert.ErrorIs(t, err, repo.ErrRoomNotFound)
	_, err = s.EndRoom(ctx, "------", time.Now())
	assert.ErrorIs(t, err, repo.ErrRoomNotFound)
}

func TestStorage_PollLog(t *testing.T) {
	s := newTestStorage(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	room := entity.Room{Code: randomCode(), Name: "log", TeacherID: gofakeit.UUID(), Status: entity.RoomStatusActive, CreatedAt: time.Now()}
	require.NoError(t, s.SaveRoom(ctx, room))

	rec := entity.PollRecord{
		ID:                 uuid.NewString(),
		RoomCode:           room.Code,
		Question:           gofakeit.Question(),
		Options:            []string{"A", "B", "C"},
		CorrectOptionIndex: 2,
		TimerSeconds:       30,
		CreatedAt:          time.Now(),
	}
	require.NoError(t, s.SavePollRecord(ctx, rec))
	assert.ErrorIs(t, s.SavePollRecord(ctx, rec), repo.ErrPollExists)

	orphan := rec
	orphan.ID = uuid.NewString()
	orphan.RoomCode = "------"
	assert.ErrorIs(t, s.SavePollRecord(ctx, orphan), repo.ErrRoomNotFound)

	_, err := s.SaveAnswerRecord(ctx, entity.AnswerRecord{PollID: rec.ID, UserID: "u1", AnswerIndex: 0, AnsweredAt: time.Now()})
	require.NoError(t, err)
	_, err = s.SaveAnswerRecord(ctx, entity.AnswerRecord{PollID: rec.ID, UserID: "u1", AnswerIndex: 2, AnsweredAt: time.Now()})
	require.NoError(t, err)

	_, err = s.SaveAnswerRecord(ctx, entity.AnswerRecord{PollID: uuid.NewString(), UserID: "u1", AnsweredAt: time.Now()})
	assert.ErrorIs(t, err, repo.ErrPollNotFound)

	polls, err := s.PollRecords(ctx, room.Code)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, rec.Options, polls[0].Options)

	answers, err := s.AnswerRecords(ctx, room.Code)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, 2, answers[1].AnswerIndex)
}
