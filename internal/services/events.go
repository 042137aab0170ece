package services

//go:generate mockgen -source=events.go -destination=mocks/events.go -package=mocks

import (
	"time"

	"github.com/14kear/livepoll/internal/engine"
)

const (
	EventPollOpened       = "poll-opened"
	EventPollTallyUpdated = "poll-tally-updated"
	EventPollTick         = "poll-tick"
	EventPollEnded        = "poll-ended"
	EventPollDeleted      = "poll-deleted"
	EventRoomEnded        = "room-ended"
)

// Broadcaster delivers room events to connected clients without blocking.
type Broadcaster interface {
	Emit(roomCode, event string, payload any)
}

// PollOpened is the poll definition without the correct answer.
type PollOpened struct {
	PollID       string        `json:"pollId"`
	RoomCode     string        `json:"roomCode"`
	Question     string        `json:"question"`
	Options      []string      `json:"options"`
	TimerSeconds int           `json:"timer"`
	TimeLeft     int           `json:"timeLeft"`
	StartedAt    time.Time     `json:"startedAt"`
	Status       engine.Status `json:"status"`
}

type TallyUpdated struct {
	PollID string `json:"pollId"`
	engine.TallySnapshot
	TimeLeft int `json:"timeLeft"`
}

type PollTick struct {
	PollID   string `json:"pollId"`
	TimeLeft int    `json:"timeLeft"`
}

type PollEnded struct {
	PollID string `json:"pollId"`
	engine.TallySnapshot
	CorrectOptionIndex int `json:"correctOptionIndex"`
	TimeLeft           int `json:"timeLeft"`
}

type PollDeleted struct {
	PollID string `json:"pollId"`
}

type RoomEnded struct {
	RoomCode string    `json:"roomCode"`
	EndedAt  time.Time `json:"endedAt"`
}

func pollOpened(s engine.Snapshot) PollOpened {
	return PollOpened{
		PollID:       s.PollID,
		RoomCode:     s.RoomCode,
		Question:     s.Question,
		Options:      s.Options,
		TimerSeconds: s.TimerSeconds,
		TimeLeft:     s.TimeLeft,
		StartedAt:    s.StartedAt,
		Status:       s.Status,
	}
}

func tallyUpdated(s engine.Snapshot) TallyUpdated {
	return TallyUpdated{PollID: s.PollID, TallySnapshot: s.TallySnapshot, TimeLeft: s.TimeLeft}
}

func pollEnded(s engine.Snapshot) PollEnded {
	return PollEnded{
		PollID:             s.PollID,
		TallySnapshot:      s.TallySnapshot,
		CorrectOptionIndex: s.CorrectOptionIndex,
		TimeLeft:           s.TimeLeft,
	}
}

// PollView is what participants can query. The correct answer is only
// present once the poll has ended.
type PollView struct {
	PollID             string        `json:"pollId"`
	RoomCode           string        `json:"roomCode"`
	Question           string        `json:"question"`
	Options            []string      `json:"options"`
	CorrectOptionIndex *int          `json:"correctOptionIndex,omitempty"`
	TimerSeconds       int           `json:"timer"`
	TimeLeft           int           `json:"timeLeft"`
	StartedAt          time.Time     `json:"startedAt"`
	Status             engine.Status `json:"status"`
	engine.TallySnapshot
}

func NewPollView(s engine.Snapshot) PollView {
	v := PollView{
		PollID:        s.PollID,
		RoomCode:      s.RoomCode,
		Question:      s.Question,
		Options:       s.Options,
		TimerSeconds:  s.TimerSeconds,
		TimeLeft:      s.TimeLeft,
		StartedAt:     s.StartedAt,
		Status:        s.Status,
		TallySnapshot: s.TallySnapshot,
	}
	if s.Status == engine.StatusEnded {
		idx := s.CorrectOptionIndex
		v.CorrectOptionIndex = &idx
	}
	return v
}
