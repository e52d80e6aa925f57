package positions

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrHasJobs      = errors.New("position has jobs")
)
