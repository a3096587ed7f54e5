// Package tracker implements loiter's user-facing operations on top of the
// store: creating and updating projects, tasks and logs, starting and
// stopping time tracking, and filtered listings.
package tracker

import (
	"errors"
	"log/slog"

	"github.com/stefanpenner/loiter/pkg/store"
)

// ErrNoActiveLog is returned when stopping while nothing is being tracked.
var ErrNoActiveLog = errors.New("no active log")

func logger(s *store.Store) *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
