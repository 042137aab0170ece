package entity

import "time"

// PollRecord is the durable copy of a poll definition.
type PollRecord struct {
	ID                 string    `json:"pollId"`
	RoomCode           string    `json:"roomCode"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	CorrectOptionIndex int       `json:"correctOptionIndex"`
	TimerSeconds       int       `json:"timer"`
	CreatedAt          time.Time `json:"createdAt"`
}
