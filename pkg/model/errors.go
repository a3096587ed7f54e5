package model

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidState      = errors.New("invalid task state")
	ErrTooFewStates      = errors.New("too few task states")
	ErrDuplicateStates   = errors.New("duplicate task states")
	ErrInvalidTag        = errors.New("invalid tag")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrNoStart           = errors.New("log has no start")
	ErrStopBeforeStart   = errors.New("log cannot stop before it starts")
	ErrDurationAndStop   = errors.New("cannot accept both a duration and a stop time")
)
