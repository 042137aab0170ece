package engine

import (
	"encoding/json"
	"math"
	"strconv"
)

// Tally holds one vote counter per option, indexed by option position.
type Tally []int

// MarshalJSON renders only the options that received at least one vote,
// keyed by the option index.
func (t Tally) MarshalJSON() ([]byte, error) {
	counts := make(map[string]int, len(t))
	for i, n := range t {
		if n > 0 {
			counts[strconv.Itoa(i)] = n
		}
	}
	return json.Marshal(counts)
}

// Sum returns the total number of counted votes.
func (t Tally) Sum() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// TallySnapshot is an immutable copy of a ledger's counters.
type TallySnapshot struct {
	Tally                   Tally `json:"tally"`
	TotalVotes              int   `json:"totalVotes"`
	CorrectOptionPercentage int   `json:"correctOptionPercentage"`
}

// Ledger is the vote state of one poll. The voter choices are the source of
// truth, tally and total are kept in step with them on every write.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	correct int
	tally   Tally
	total   int
	choices map[string]int
}

func NewLedger(optionCount, correctOptionIndex int) *Ledger {
	return &Ledger{
		correct: correctOptionIndex,
		tally:   make(Tally, optionCount),
		choices: make(map[string]int),
	}
}

// RecordVote sets the voter's current choice. A first vote adds to the total,
// a changed vote moves the voter between buckets, and repeating the current
// choice changes nothing.
func (l *Ledger) RecordVote(voterID string, optionIndex int) (TallySnapshot, error) {
	if optionIndex < 0 || optionIndex >= len(l.tally) {
		return TallySnapshot{}, ErrInvalidOption
	}

	prev, voted := l.choices[voterID]
	switch {
	case !voted:
		l.tally[optionIndex]++
		l.total++
	case prev != optionIndex:
		if l.tally[prev] > 0 {
			l.tally[prev]--
		}
		l.tally[optionIndex]++
	}
	l.choices[voterID] = optionIndex

	return l.Snapshot(), nil
}

// Choice returns the option the voter currently has selected.
func (l *Ledger) Choice(voterID string) (int, bool) {
	idx, ok := l.choices[voterID]
	return idx, ok
}

func (l *Ledger) Snapshot() TallySnapshot {
	tally := make(Tally, len(l.tally))
	copy(tally, l.tally)

	return TallySnapshot{
		Tally:                   tally,
		TotalVotes:              l.total,
		CorrectOptionPercentage: percentage(l.tally[l.correct], l.total),
	}
}

func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
