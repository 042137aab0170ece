package engine

import "errors"

var (
	ErrInvalidSpec   = errors.New("invalid poll definition")
	ErrInvalidOption = errors.New("option index out of range")
	ErrPollNotFound  = errors.New("poll not found")
	ErrPollClosed    = errors.New("poll is closed")
	ErrDuplicateID   = errors.New("poll id already exists")
)
