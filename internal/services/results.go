package services

//go:generate mockgen -source=results.go -destination=mocks/results.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

type Results struct {
	log      *slog.Logger
	rooms    RoomProvider
	pollLog  PollLog
	identity IdentityProvider
}

type PollLog interface {
	PollRecords(ctx context.Context, roomCode string) ([]entity.PollRecord, error)
	AnswerRecords(ctx context.Context, roomCode string) ([]entity.AnswerRecord, error)
}

type IdentityProvider interface {
	ResolveDisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

func NewResults(log *slog.Logger, rooms RoomProvider, pollLog PollLog, identity IdentityProvider) *Results {
	return &Results{
		log:      log,
		rooms:    rooms,
		pollLog:  pollLog,
		identity: identity,
	}
}

// PollResults aggregates the recorded history of the room. Each voter counts
// once per poll, with the last answer they gave.
func (r *Results) PollResults(ctx context.Context, roomCode string) ([]entity.PollResult, error) {
	const op = "Results.PollResults"

	log := r.log.With(slog.String("op", op), slog.String("room", roomCode))

	if _, err := r.rooms.Room(ctx, roomCode); err != nil {
		if errors.Is(err, repo.ErrRoomNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrRoomNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	polls, err := r.pollLog.PollRecords(ctx, roomCode)
	if err != nil {
		log.Error("failed to load polls", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	answers, err := r.pollLog.AnswerRecords(ctx, roomCode)
	if err != nil {
		log.Error("failed to load answers", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	latest := latestAnswers(answers)
	names := r.displayNames(ctx, log, latest)

	results := make([]entity.PollResult, 0, len(polls))
	for _, poll := range polls {
		result := entity.PollResult{
			PollID:   poll.ID,
			Question: poll.Question,
			Options:  make([]entity.OptionResult, len(poll.Options)),
		}
		for i, opt := range poll.Options {
			result.Options[i] = entity.OptionResult{Option: opt, Users: []entity.Voter{}}
		}

		for _, ans := range latest[poll.ID] {
			if ans.AnswerIndex < 0 || ans.AnswerIndex >= len(poll.Options) {
				continue
			}
			opt := &result.Options[ans.AnswerIndex]
			opt.Count++
			opt.Users = append(opt.Users, entity.Voter{ID: ans.UserID, Name: nameOf(names, ans.UserID)})
			result.TotalVotes++
		}

		results = append(results, result)
	}

	return results, nil
}

// latestAnswers keeps the newest answer of every voter, grouped by poll and
// ordered by when that answer was given.
func latestAnswers(answers []entity.AnswerRecord) map[string][]entity.AnswerRecord {
	type key struct{ poll, user string }

	newest := make(map[key]entity.AnswerRecord, len(answers))
	for _, ans := range answers {
		k := key{ans.PollID, ans.UserID}
		prev, seen := newest[k]
		if !seen || !ans.AnsweredAt.Before(prev.AnsweredAt) {
			newest[k] = ans
		}
	}

	byPoll := make(map[string][]entity.AnswerRecord)
	for _, ans := range newest {
		byPoll[ans.PollID] = append(byPoll[ans.PollID], ans)
	}
	for _, list := range byPoll {
		sort.Slice(list, func(i, j int) bool {
			if !list[i].AnsweredAt.Equal(list[j].AnsweredAt) {
				return list[i].AnsweredAt.Before(list[j].AnsweredAt)
			}
			return list[i].ID < list[j].ID
		})
	}
	return byPoll
}

// displayNames resolves every voter at once. A failed lookup leaves all of
// them unnamed rather than failing the results.
func (r *Results) displayNames(ctx context.Context, log *slog.Logger, latest map[string][]entity.AnswerRecord) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for _, list := range latest {
		for _, ans := range list {
			if _, ok := seen[ans.UserID]; ok {
				continue
			}
			seen[ans.UserID] = struct{}{}
			ids = append(ids, ans.UserID)
		}
	}
	if len(ids) == 0 || r.identity == nil {
		return nil
	}
	sort.Strings(ids)

	names, err := r.identity.ResolveDisplayNames(ctx, ids)
	if err != nil {
		log.Warn("failed to resolve display names", sl.Err(err))
		return nil
	}
	return names
}

func nameOf(names map[string]string, userID string) string {
	if name := names[userID]; name != "" {
		return name
	}
	return entity.UnknownUserName
}
