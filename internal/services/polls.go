package services

//go:generate mockgen -source=polls.go -destination=mocks/polls.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/14kear/livepoll/internal/engine"
	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
)

const (
	createAttempts = 3
	recordTimeout  = 5 * time.Second
)

// LivePolls coordinates the in-memory polls of every room: it owns the
// registry and the timer driver and turns every state change into an event.
type LivePolls struct {
	log         *slog.Logger
	rooms       RoomProvider
	recorder    PollRecorder
	broadcaster Broadcaster
	registry    *engine.Registry
	timers      *engine.Driver
}

type RoomProvider interface {
	Room(ctx context.Context, code string) (entity.Room, error)
}

// PollRecorder exports polls and answers to durable storage. Failures are
// logged and never fail the live operation.
type PollRecorder interface {
	SavePollRecord(ctx context.Context, rec entity.PollRecord) error
	SaveAnswerRecord(ctx context.Context, rec entity.AnswerRecord) (int64, error)
}

type CreatePollInput struct {
	Question           string
	Options            []string
	CorrectOptionIndex int
	TimerSeconds       int
}

func NewLivePolls(
	log *slog.Logger,
	rooms RoomProvider,
	recorder PollRecorder,
	broadcaster Broadcaster,
	timerOpts ...engine.DriverOption,
) *LivePolls {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	l := &LivePolls{
		log:         log,
		rooms:       rooms,
		recorder:    recorder,
		broadcaster: broadcaster,
		registry:    engine.NewRegistry(),
	}
	l.timers = engine.NewDriver(l.onTick, l.onExpire, timerOpts...)

	return l
}

// CreatePoll opens a new poll in an active room and arms its countdown.
// The returned snapshot carries the full definition, including the correct
// answer, for the moderator.
func (l *LivePolls) CreatePoll(ctx context.Context, roomCode string, in CreatePollInput) (engine.Snapshot, error) {
	const op = "LivePolls.CreatePoll"

	log := l.log.With(slog.String("op", op), slog.String("room", roomCode))

	if err := l.checkRoom(ctx, roomCode); err != nil {
		log.Warn("room is not available for polls", sl.Err(err))
		return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	var (
		opened engine.Snapshot
		poll   *engine.Poll
		err    error
	)
	for attempt := 0; attempt < createAttempts; attempt++ {
		poll, err = engine.NewPoll(engine.Definition{
			ID:                 uuid.NewString(),
			RoomCode:           roomCode,
			Question:           in.Question,
			Options:            in.Options,
			CorrectOptionIndex: in.CorrectOptionIndex,
			TimerSeconds:       in.TimerSeconds,
			StartedAt:          l.timers.Now(),
		})
		if err != nil {
			log.Info("invalid poll definition", sl.Err(err))
			return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
		}

		err = poll.Open(func(p *engine.Poll) error {
			return l.register(ctx, log, p)
		}, func(s engine.Snapshot) {
			opened = s
			l.broadcaster.Emit(s.RoomCode, EventPollOpened, pollOpened(s))
		})
		if !errors.Is(err, engine.ErrDuplicateID) {
			break
		}
		log.Warn("poll id collision, retrying", slog.String("poll_id", poll.ID()))
	}
	if err != nil {
		log.Error("failed to register poll", sl.Err(err))
		return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	def := poll.Definition()
	log.Info("poll opened", slog.String("poll_id", def.ID), slog.Int("timer", def.TimerSeconds))

	return opened, nil
}

// register makes the poll visible, writes its record and starts its
// countdown. It runs inside Poll.Open, so no tick can be published before
// poll-opened and no vote can be applied before the record exists.
func (l *LivePolls) register(ctx context.Context, log *slog.Logger, p *engine.Poll) error {
	if err := l.registry.Create(p); err != nil {
		return err
	}

	def := p.Definition()
	l.record(ctx, log, func(ctx context.Context) error {
		return l.recorder.SavePollRecord(ctx, entity.PollRecord{
			ID:                 def.ID,
			RoomCode:           def.RoomCode,
			Question:           def.Question,
			Options:            def.Options,
			CorrectOptionIndex: def.CorrectOptionIndex,
			TimerSeconds:       def.TimerSeconds,
			CreatedAt:          def.StartedAt,
		})
	})

	l.timers.Arm(def.ID, def.StartedAt, def.TimerSeconds)
	return nil
}

// SubmitVote records or changes the voter's answer.
func (l *LivePolls) SubmitVote(ctx context.Context, roomCode, pollID, voterID string, optionIndex int) (engine.Snapshot, error) {
	const op = "LivePolls.SubmitVote"

	log := l.log.With(
		slog.String("op", op),
		slog.String("room", roomCode),
		slog.String("poll_id", pollID),
	)

	if voterID == "" {
		return engine.Snapshot{}, fmt.Errorf("%s: %w: voter id is empty", op, ErrValidation)
	}

	poll, err := l.lookup(roomCode, pollID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := poll.Vote(voterID, optionIndex, l.publishTally)
	if err != nil {
		log.Info("vote rejected", slog.String("voter", voterID), sl.Err(err))
		return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	l.record(ctx, log, func(ctx context.Context) error {
		_, err := l.recorder.SaveAnswerRecord(ctx, entity.AnswerRecord{
			PollID:      pollID,
			UserID:      voterID,
			AnswerIndex: optionIndex,
			AnsweredAt:  snap.VotedAt,
		})
		return err
	})

	log.Debug("vote recorded", slog.String("voter", voterID), slog.Int("total", snap.TotalVotes))

	return snap, nil
}

// EndPoll closes the poll. Ending an ended poll returns its final snapshot.
// The countdown is stopped before EndPoll returns.
func (l *LivePolls) EndPoll(ctx context.Context, roomCode, pollID string) (engine.Snapshot, error) {
	const op = "LivePolls.EndPoll"

	poll, err := l.lookup(roomCode, pollID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	snap, _ := l.end(poll)

	return snap, nil
}

// DeletePoll removes the poll from its room. The countdown is stopped before
// DeletePoll returns.
func (l *LivePolls) DeletePoll(ctx context.Context, roomCode, pollID string) error {
	const op = "LivePolls.DeletePoll"

	log := l.log.With(slog.String("op", op), slog.String("poll_id", pollID))

	if _, err := l.lookup(roomCode, pollID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	poll, ok := l.registry.Delete(pollID)
	if !ok {
		return fmt.Errorf("%s: %w", op, engine.ErrPollNotFound)
	}

	poll.MarkDeleted(func(s engine.Snapshot) {
		l.broadcaster.Emit(s.RoomCode, EventPollDeleted, PollDeleted{PollID: s.PollID})
	})
	l.timers.Cancel(pollID)

	log.Info("poll deleted")

	return nil
}

// ListActivePolls returns the room's open and ended polls, oldest first.
// Ended rooms stay listable.
func (l *LivePolls) ListActivePolls(ctx context.Context, roomCode string) ([]PollView, error) {
	const op = "LivePolls.ListActivePolls"

	if _, err := l.findRoom(ctx, roomCode); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	polls := l.registry.ListByRoom(roomCode)

	views := make([]PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, NewPollView(p.Snapshot()))
	}
	return views, nil
}

func (l *LivePolls) GetPoll(ctx context.Context, roomCode, pollID string) (PollView, error) {
	const op = "LivePolls.GetPoll"

	poll, err := l.lookup(roomCode, pollID)
	if err != nil {
		return PollView{}, fmt.Errorf("%s: %w", op, err)
	}

	return NewPollView(poll.Snapshot()), nil
}

// EndRoomPolls ends every open poll of the room and reports how many it ended.
func (l *LivePolls) EndRoomPolls(ctx context.Context, roomCode string) int {
	ended := 0
	for _, p := range l.registry.ListByRoom(roomCode) {
		if _, ok := l.end(p); ok {
			ended++
		}
	}
	return ended
}

// Shutdown stops every countdown. Polls stay queryable but no longer expire.
func (l *LivePolls) Shutdown() {
	const op = "LivePolls.Shutdown"

	l.timers.Stop()
	l.log.Info("live polls stopped", slog.String("op", op), slog.Int("polls", l.registry.Len()))
}

func (l *LivePolls) end(p *engine.Poll) (engine.Snapshot, bool) {
	snap, ended := p.End(l.publishEnded)
	// Arm runs under Poll.Open, so after End the countdown is either armed or
	// never will be.
	l.timers.Cancel(p.ID())

	if ended {
		l.log.Info("poll ended",
			slog.String("poll_id", p.ID()),
			slog.Int("total_votes", snap.TotalVotes),
		)
	}
	return snap, ended
}

func (l *LivePolls) onTick(pollID string, timeLeft int) {
	poll, ok := l.registry.Get(pollID)
	if !ok {
		return
	}
	poll.SetTimeLeft(timeLeft, func(s engine.Snapshot) {
		l.broadcaster.Emit(s.RoomCode, EventPollTick, PollTick{PollID: s.PollID, TimeLeft: s.TimeLeft})
	})
}

func (l *LivePolls) onExpire(pollID string) {
	poll, ok := l.registry.Get(pollID)
	if !ok {
		return
	}
	l.end(poll)
}

func (l *LivePolls) publishTally(s engine.Snapshot) {
	l.broadcaster.Emit(s.RoomCode, EventPollTallyUpdated, tallyUpdated(s))
}

func (l *LivePolls) publishEnded(s engine.Snapshot) {
	l.broadcaster.Emit(s.RoomCode, EventPollEnded, pollEnded(s))
}

// lookup finds a live poll that belongs to the room.
func (l *LivePolls) lookup(roomCode, pollID string) (*engine.Poll, error) {
	poll, ok := l.registry.Get(pollID)
	if !ok || poll.RoomCode() != roomCode {
		return nil, engine.ErrPollNotFound
	}
	return poll, nil
}

func (l *LivePolls) findRoom(ctx context.Context, roomCode string) (entity.Room, error) {
	room, err := l.rooms.Room(ctx, roomCode)
	if err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return entity.Room{}, ErrRoomNotFound
		}
		return entity.Room{}, err
	}
	return room, nil
}

func (l *LivePolls) checkRoom(ctx context.Context, roomCode string) error {
	room, err := l.findRoom(ctx, roomCode)
	if err != nil {
		return err
	}
	if !room.Active() {
		return ErrRoomEnded
	}
	return nil
}

// record runs a best-effort export. It is detached from the request's
// cancellation so an aborted client does not drop history.
func (l *LivePolls) record(ctx context.Context, log *slog.Logger, save func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := save(ctx); err != nil {
		log.Warn("failed to record poll history", sl.Err(err))
	}
}

type noopRecorder struct{}

func (noopRecorder) SavePollRecord(context.Context, entity.PollRecord) error { return nil }

func (noopRecorder) SaveAnswerRecord(context.Context, entity.AnswerRecord) (int64, error) {
	return 0, nil
}
