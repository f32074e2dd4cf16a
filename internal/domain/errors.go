package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidHours      = errors.New("estimated hours must be a positive number")
	ErrConfiguration     = errors.New("configuration error")
	ErrInvalidTransition = errors.New("invalid segment transition")
	ErrJobLocked         = errors.New("job is locked")
)
