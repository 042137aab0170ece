package repo

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrPollNotFound = errors.New("poll not found")
	ErrPollExists   = errors.New("poll already exists")
)
