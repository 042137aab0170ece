package engine

import (
	"sync"
	"time"
)

const DefaultTickInterval = time.Second

// TickFunc receives the remaining whole seconds of a timed poll.
type TickFunc func(pollID string, timeLeft int)

// ExpireFunc is called once when a timed poll runs out of time.
type ExpireFunc func(pollID string)

type DriverOption func(*Driver)

// WithTickInterval overrides the one second tick period.
func WithTickInterval(d time.Duration) DriverOption {
	return func(dr *Driver) {
		if d > 0 {
			dr.period = d
		}
	}
}

// WithClock replaces time.Now as the source of elapsed time.
func WithClock(now func() time.Time) DriverOption {
	return func(dr *Driver) {
		if now != nil {
			dr.now = now
		}
	}
}

// Driver runs one countdown goroutine per timed poll. Callbacks only get the
// poll id and must look the poll up themselves.
type Driver struct {
	period   time.Duration
	now      func() time.Time
	onTick   TickFunc
	onExpire ExpireFunc

	mu     sync.Mutex
	timers map[string]*countdown
	closed bool
	wg     sync.WaitGroup
}

type countdown struct {
	stop chan struct{}
	done chan struct{}
}

func NewDriver(onTick TickFunc, onExpire ExpireFunc, opts ...DriverOption) *Driver {
	d := &Driver{
		period:   DefaultTickInterval,
		now:      time.Now,
		onTick:   onTick,
		onExpire: onExpire,
		timers:   make(map[string]*countdown),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Now() time.Time {
	return d.now()
}

// Arm starts the countdown for a poll. It does nothing and returns false for
// untimed polls, for polls that already have a countdown, and after Stop.
func (d *Driver) Arm(pollID string, startedAt time.Time, seconds int) bool {
	if seconds <= 0 {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	if _, armed := d.timers[pollID]; armed {
		return false
	}

	c := &countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	d.timers[pollID] = c

	d.wg.Add(1)
	go d.run(pollID, c, startedAt, seconds)
	return true
}

// Cancel stops the poll's countdown and waits for its goroutine to exit, so
// no callback for the poll starts after Cancel returns. Cancelling an unknown
// or already finished countdown is a no-op. Must not be called from a
// TickFunc for the same poll.
func (d *Driver) Cancel(pollID string) bool {
	d.mu.Lock()
	c, ok := d.timers[pollID]
	if ok {
		delete(d.timers, pollID)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}

	close(c.stop)
	<-c.done
	return true
}

func (d *Driver) Armed(pollID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[pollID]
	return ok
}

// Stop cancels every countdown and waits for all driver goroutines,
// including expiry callbacks already in flight.
func (d *Driver) Stop() {
	d.mu.Lock()
	d.closed = true
	pending := d.timers
	d.timers = make(map[string]*countdown)
	d.mu.Unlock()

	for _, c := range pending {
		close(c.stop)
	}
	d.wg.Wait()
}

func (d *Driver) run(pollID string, c *countdown, startedAt time.Time, seconds int) {
	defer d.wg.Done()
	defer close(c.done)

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		// a cancel that raced with the ticker wins
		select {
		case <-c.stop:
			return
		default:
		}

		left := remaining(d.now().Sub(startedAt), seconds)
		d.onTick(pollID, left)

		if left > 0 {
			continue
		}

		if !d.release(pollID, c) {
			return
		}
		d.onExpire(pollID)
		return
	}
}

// release drops the countdown from the table unless a Cancel got there first.
func (d *Driver) release(pollID string, c *countdown) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timers[pollID] != c {
		return false
	}
	delete(d.timers, pollID)
	return true
}

func remaining(elapsed time.Duration, seconds int) int {
	left := seconds - int(elapsed/time.Second)
	if left < 0 {
		return 0
	}
	if left > seconds {
		return seconds
	}
	return left
}
