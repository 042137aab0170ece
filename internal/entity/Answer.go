package entity

import "time"

// AnswerRecord is one appended answer. A voter that changes their mind gets a
// new record; the newest one counts.
type AnswerRecord struct {
	ID          int64     `json:"id"`
	PollID      string    `json:"pollId"`
	UserID      string    `json:"userId"`
	AnswerIndex int       `json:"answerIndex"`
	AnsweredAt  time.Time `json:"answeredAt"`
}
