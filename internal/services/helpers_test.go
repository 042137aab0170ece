package services

import (
	"sync"
	"time"
)

type emitted struct {
	room    string
	name    string
	payload any
}

// eventLog is a Broadcaster that keeps everything it is given.
type eventLog struct {
	mu     sync.Mutex
	events []emitted
}

func (e *eventLog) Emit(roomCode, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emitted{room: roomCode, name: event, payload: payload})
}

func (e *eventLog) all() []emitted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emitted(nil), e.events...)
}

func (e *eventLog) named(name string) []emitted {
	var out []emitted
	for _, ev := range e.all() {
		if ev.name == name {
			out = append(out, ev)
		}
	}
	return out
}

// steppingClock moves forward one second on every read.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
