package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/14kear/livepoll/internal/engine"
	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/lib/logger"
	"github.com/14kear/livepoll/internal/repo"
	"github.com/14kear/livepoll/internal/repo/memory"
	"github.com/14kear/livepoll/internal/services/mocks"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRooms(ctrl *gomock.Controller) (*Rooms, *mocks.MockRoomStorage, *mocks.MockRoomPolls, *mocks.MockBroadcaster) {
	storage := mocks.NewMockRoomStorage(ctrl)
	polls := mocks.NewMockRoomPolls(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	return NewRooms(logger.Discard(), storage, polls, broadcaster), storage, polls, broadcaster
}

func TestRooms_CreateRoom_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	name := gofakeit.BookTitle()
	teacher := gofakeit.UUID()

	storage.EXPECT().SaveRoom(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, room entity.Room) error {
			assert.Equal(t, name, room.Name)
			assert.Equal(t, teacher, room.TeacherID)
			return nil
		})

	room, err := rooms.CreateRoom(context.Background(), name, teacher)
	require.NoError(t, err)

	assert.Len(t, room.Code, roomCodeLength)
	for _, r := range room.Code {
		assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "unexpected rune %q", r)
	}
	assert.Equal(t, entity.RoomStatusActive, room.Status)
}

func TestRooms_CreateRoom_RetriesTakenCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)

	gomock.InOrder(
		storage.EXPECT().SaveRoom(gomock.Any(), gomock.Any()).Return(repo.ErrRoomExists),
		storage.EXPECT().SaveRoom(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := rooms.CreateRoom(context.Background(), "Algebra", "t1")
	require.NoError(t, err)
}

func TestRooms_CreateRoom_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	storage.EXPECT().SaveRoom(gomock.Any(), gomock.Any()).Return(repo.ErrRoomExists).Times(roomCodeAttempts)

	_, err := rooms.CreateRoom(context.Background(), "Algebra", "t1")
	assert.ErrorIs(t, err, repo.ErrRoomExists)
}

func TestRooms_CreateRoom_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, _, _, _ := newTestRooms(ctrl)

	_, err := rooms.CreateRoom(context.Background(), "  ", "t1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = rooms.CreateRoom(context.Background(), "Algebra", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRooms_CreateRoom_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	boom := errors.New("connection reset")
	storage.EXPECT().SaveRoom(gomock.Any(), gomock.Any()).Return(boom)

	_, err := rooms.CreateRoom(context.Background(), "Algebra", "t1")
	assert.ErrorIs(t, err, boom)
}

func TestRooms_GetRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	want := activeRoom("ABC123")

	storage.EXPECT().Room(gomock.Any(), "ABC123").Return(want, nil)
	storage.EXPECT().Room(gomock.Any(), "NOPE00").Return(entity.Room{}, repo.ErrRoomNotFound)

	got, err := rooms.GetRoom(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = rooms.GetRoom(context.Background(), "NOPE00")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRooms_EndRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, polls, broadcaster := newTestRooms(ctrl)

	endedAt := time.Now().UTC()
	ended := activeRoom("ABC123")
	ended.Status = entity.RoomStatusEnded
	ended.EndedAt = &endedAt

	storage.EXPECT().EndRoom(gomock.Any(), "ABC123", gomock.Any()).Return(ended, nil)
	gomock.InOrder(
		polls.EXPECT().EndRoomPolls(gomock.Any(), "ABC123").Return(2),
		broadcaster.EXPECT().Emit("ABC123", EventRoomEnded, RoomEnded{RoomCode: "ABC123", EndedAt: endedAt}),
	)

	room, err := rooms.EndRoom(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusEnded, room.Status)
}

func TestRooms_EndRoom_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	storage.EXPECT().EndRoom(gomock.Any(), "NOPE00", gomock.Any()).Return(entity.Room{}, repo.ErrRoomNotFound)

	_, err := rooms.EndRoom(context.Background(), "NOPE00")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRooms_ListRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rooms, storage, _, _ := newTestRooms(ctrl)
	list := []entity.Room{activeRoom("ABC123")}
	storage.EXPECT().RoomsByTeacher(gomock.Any(), "t1", entity.RoomStatusActive).Return(list, nil)

	got, err := rooms.ListRooms(context.Background(), "t1", entity.RoomStatusActive)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	_, err = rooms.ListRooms(context.Background(), "t1", "archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRooms_EndRoomClosesLivePolls(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &eventLog{}

	polls := NewLivePolls(logger.Discard(), store, store, events)
	defer polls.Shutdown()
	rooms := NewRooms(logger.Discard(), store, polls, events)

	room, err := rooms.CreateRoom(ctx, "Physics", "t1")
	require.NoError(t, err)

	poll, err := polls.CreatePoll(ctx, room.Code, CreatePollInput{Question: "g?", Options: []string{"9.8", "10"}, TimerSeconds: 60})
	require.NoError(t, err)

	_, err = rooms.EndRoom(ctx, room.Code)
	require.NoError(t, err)

	view, err := polls.GetPoll(ctx, room.Code, poll.PollID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusEnded, view.Status)

	_, err = polls.CreatePoll(ctx, room.Code, CreatePollInput{Question: "again?", Options: []string{"y", "n"}})
	assert.ErrorIs(t, err, ErrRoomEnded)

	require.Len(t, events.named(EventRoomEnded), 1)
	assert.Len(t, events.named(EventPollEnded), 1)
}
