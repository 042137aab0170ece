package engine

import (
	"sort"
	"sync"
)

// Registry owns the live polls of the process, keyed by poll id and indexed
// by room. It only guards the collection; each Poll guards its own state.
type Registry struct {
	mu    sync.RWMutex
	polls map[string]*Poll
	rooms map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		polls: make(map[string]*Poll),
		rooms: make(map[string]map[string]struct{}),
	}
}

// Create adds the poll, returning ErrDuplicateID if its id is taken.
func (r *Registry) Create(p *Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.polls[p.ID()]; exists {
		return ErrDuplicateID
	}

	r.polls[p.ID()] = p
	room := r.rooms[p.RoomCode()]
	if room == nil {
		room = make(map[string]struct{})
		r.rooms[p.RoomCode()] = room
	}
	room[p.ID()] = struct{}{}
	return nil
}

func (r *Registry) Get(id string) (*Poll, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.polls[id]
	return p, ok
}

// ListByRoom returns the room's polls, oldest first.
func (r *Registry) ListByRoom(roomCode string) []*Poll {
	r.mu.RLock()
	ids := r.rooms[roomCode]
	list := make([]*Poll, 0, len(ids))
	for id := range ids {
		list = append(list, r.polls[id])
	}
	r.mu.RUnlock()

	sortPolls(list)
	return list
}

// Delete removes the poll and reports whether it was present.
func (r *Registry) Delete(id string) (*Poll, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.polls[id]
	if !ok {
		return nil, false
	}
	delete(r.polls, id)
	if room := r.rooms[p.RoomCode()]; room != nil {
		delete(room, id)
		if len(room) == 0 {
			delete(r.rooms, p.RoomCode())
		}
	}
	return p, true
}

func (r *Registry) All() []*Poll {
	r.mu.RLock()
	list := make([]*Poll, 0, len(r.polls))
	for _, p := range r.polls {
		list = append(list, p)
	}
	r.mu.RUnlock()

	sortPolls(list)
	return list
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.polls)
}

func sortPolls(list []*Poll) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].def, list[j].def
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.Before(b.StartedAt)
		}
		return a.ID < b.ID
	})
}
