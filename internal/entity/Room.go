package entity

import "time"

type RoomStatus string

const (
	RoomStatusActive RoomStatus = "active"
	RoomStatusEnded  RoomStatus = "ended"
)

type Room struct {
	Code      string     `json:"roomCode"`
	Name      string     `json:"name"`
	TeacherID string     `json:"teacherId"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func (r Room) Active() bool {
	return r.Status == RoomStatusActive
}
