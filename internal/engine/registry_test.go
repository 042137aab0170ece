package engine

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoll(t *testing.T, id, room string, startedAt time.Time) *Poll {
	t.Helper()
	p, err := NewPoll(Definition{
		ID:        id,
		RoomCode:  room,
		Question:  "Q " + id,
		Options:   []string{"yes", "no"},
		StartedAt: startedAt,
	})
	require.NoError(t, err)
	return p
}

func TestRegistry_CreateDuplicate(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	require.NoError(t, r.Create(mustPoll(t, "p1", "R1", now)))
	err := r.Create(mustPoll(t, "p1", "R2", now))
	assert.ErrorIs(t, err, ErrDuplicateID)

	p, ok := r.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "R1", p.RoomCode())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ListByRoom(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	require.NoError(t, r.Create(mustPoll(t, "b", "R1", now.Add(time.Second))))
	require.NoError(t, r.Create(mustPoll(t, "a", "R1", now)))
	require.NoError(t, r.Create(mustPoll(t, "c", "R2", now)))

	list := r.ListByRoom("R1")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID())
	assert.Equal(t, "b", list[1].ID())

	assert.Empty(t, r.ListByRoom("missing"))
	assert.Len(t, r.All(), 3)
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(mustPoll(t, "p1", "R1", time.Now())))

	p, ok := r.Delete("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID())

	_, ok = r.Delete("p1")
	assert.False(t, ok)

	_, ok = r.Get("p1")
	assert.False(t, ok)
	assert.Empty(t, r.ListByRoom("R1"))
	assert.Zero(t, r.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "p" + strconv.Itoa(i)
			assert.NoError(t, r.Create(mustPoll(t, id, "R"+strconv.Itoa(i%3), now)))
			_, ok := r.Get(id)
			assert.True(t, ok)
			_ = r.ListByRoom("R0")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
	assert.Len(t, r.ListByRoom("R0"), 17)
}
