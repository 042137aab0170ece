package engine

import (
	"strings"
	"sync"
	"time"
)

type Status string

const (
	StatusOpen  Status = "open"
	StatusEnded Status = "ended"
)

// Definition is the immutable part of a poll.
type Definition struct {
	ID                 string
	RoomCode           string
	Question           string
	Options            []string
	CorrectOptionIndex int
	TimerSeconds       int
	StartedAt          time.Time
}

// Snapshot is a point-in-time copy of a poll, safe to hand out without locking.
type Snapshot struct {
	PollID             string    `json:"pollId"`
	RoomCode           string    `json:"roomCode"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	CorrectOptionIndex int       `json:"correctOptionIndex"`
	TimerSeconds       int       `json:"timer"`
	TimeLeft           int       `json:"timeLeft"`
	StartedAt          time.Time `json:"startedAt"`
	Status             Status    `json:"status"`
	TallySnapshot

	// VotedAt is set on snapshots returned by Vote. Votes on one poll get
	// strictly increasing times in the order the ledger applied them.
	VotedAt time.Time `json:"-"`
}

// Poll is a live poll. Two locks guard it: mu protects the mutable state and
// publishMu orders emitted events. Writers take publishMu first, mutate under
// mu, release mu and publish the copied snapshot while still holding
// publishMu, so events leave in the same order the mutations were applied and
// subscribers are never reached with mu held.
//
// The publish callbacks run with publishMu held and must not block: a slow
// publish stalls every later write to the same poll.
type Poll struct {
	def Definition

	publishMu sync.Mutex

	mu       sync.Mutex
	ledger   *Ledger
	status   Status
	timeLeft int
	deleted  bool
	lastVote time.Time
}

// NewPoll validates the definition and returns an open poll.
func NewPoll(def Definition) (*Poll, error) {
	if strings.TrimSpace(def.Question) == "" || def.ID == "" {
		return nil, ErrInvalidSpec
	}
	if len(def.Options) < 2 {
		return nil, ErrInvalidSpec
	}
	for _, opt := range def.Options {
		if strings.TrimSpace(opt) == "" {
			return nil, ErrInvalidSpec
		}
	}
	if def.CorrectOptionIndex < 0 || def.CorrectOptionIndex >= len(def.Options) {
		return nil, ErrInvalidSpec
	}
	if def.TimerSeconds < 0 {
		return nil, ErrInvalidSpec
	}

	options := make([]string, len(def.Options))
	copy(options, def.Options)
	def.Options = options

	return &Poll{
		def:      def,
		ledger:   NewLedger(len(options), def.CorrectOptionIndex),
		status:   StatusOpen,
		timeLeft: def.TimerSeconds,
	}, nil
}

func (p *Poll) ID() string       { return p.def.ID }
func (p *Poll) RoomCode() string { return p.def.RoomCode }

func (p *Poll) Definition() Definition {
	def := p.def
	def.Options = append([]string(nil), p.def.Options...)
	return def
}

// Open runs register and, if it succeeds, publishes the opening snapshot
// before any other event for this poll can be published.
func (p *Poll) Open(register func(*Poll) error, publish func(Snapshot)) error {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	if err := register(p); err != nil {
		return err
	}

	publish(p.Snapshot())
	return nil
}

// Vote records the voter's choice and publishes the resulting snapshot.
func (p *Poll) Vote(voterID string, optionIndex int, publish func(Snapshot)) (Snapshot, error) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	switch {
	case p.deleted:
		p.mu.Unlock()
		return Snapshot{}, ErrPollNotFound
	case p.status != StatusOpen:
		p.mu.Unlock()
		return Snapshot{}, ErrPollClosed
	}
	if _, err := p.ledger.RecordVote(voterID, optionIndex); err != nil {
		p.mu.Unlock()
		return Snapshot{}, err
	}
	snap := p.snapshotLocked()
	snap.VotedAt = p.nextVoteTimeLocked()
	p.mu.Unlock()

	publish(snap)
	return snap, nil
}

// nextVoteTimeLocked returns the wall time of the current vote at microsecond
// precision, bumped past the previous vote so stored answers keep ledger order.
func (p *Poll) nextVoteTimeLocked() time.Time {
	at := time.Now().UTC().Truncate(time.Microsecond)
	if !at.After(p.lastVote) {
		at = p.lastVote.Add(time.Microsecond)
	}
	p.lastVote = at
	return at
}

// SetTimeLeft applies a timer reading. Readings that would move the countdown
// backwards, or arrive after the poll ended, are dropped without publishing.
func (p *Poll) SetTimeLeft(timeLeft int, publish func(Snapshot)) bool {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	if p.deleted || p.status != StatusOpen || timeLeft > p.timeLeft {
		p.mu.Unlock()
		return false
	}
	p.timeLeft = max(0, timeLeft)
	snap := p.snapshotLocked()
	p.mu.Unlock()

	publish(snap)
	return true
}

// End closes the poll. It reports false, and publishes nothing, when the poll
// was already ended or deleted.
func (p *Poll) End(publish func(Snapshot)) (Snapshot, bool) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	if p.deleted || p.status == StatusEnded {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, false
	}
	p.status = StatusEnded
	snap := p.snapshotLocked()
	p.mu.Unlock()

	publish(snap)
	return snap, true
}

// MarkDeleted makes every later write fail with ErrPollNotFound.
func (p *Poll) MarkDeleted(publish func(Snapshot)) bool {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	if p.deleted {
		p.mu.Unlock()
		return false
	}
	p.deleted = true
	snap := p.snapshotLocked()
	p.mu.Unlock()

	publish(snap)
	return true
}

func (p *Poll) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Poll) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poll) snapshotLocked() Snapshot {
	return Snapshot{
		PollID:             p.def.ID,
		RoomCode:           p.def.RoomCode,
		Question:           p.def.Question,
		Options:            append([]string(nil), p.def.Options...),
		CorrectOptionIndex: p.def.CorrectOptionIndex,
		TimerSeconds:       p.def.TimerSeconds,
		TimeLeft:           p.timeLeft,
		StartedAt:          p.def.StartedAt,
		Status:             p.status,
		TallySnapshot:      p.ledger.Snapshot(),
	}
}
