package model

import (
	"time"

	"github.com/stefanpenner/loiter/pkg/timeparse"
)

// Log records time spent on a project, optionally against one of its
// tasks. A log with a start and no duration is still running.
type Log struct {
	ProjectID string              `json:"-"`
	TaskID    TaskID              `json:"-"`
	ID        LogID               `json:"-"`
	Start     *time.Time          `json:"start,omitempty"`
	Duration  *timeparse.Duration `json:"duration,omitempty"`
	Comment   string              `json:"comment,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
}

// NewLog returns an unsaved log attached to the given project and task.
func NewLog(projectID string, taskID TaskID) *Log {
	return &Log{ProjectID: projectID, TaskID: taskID}
}

// HasTask reports whether the log belongs to a task.
func (l *Log) HasTask() bool { return l.TaskID != NoTask }

// IsActive reports whether the log has started and not yet stopped.
func (l *Log) IsActive() bool { return l.Start != nil && l.Duration == nil }

// Stop is the derived end of the log, start + duration.
func (l *Log) Stop() (time.Time, bool) {
	if l.Start == nil || l.Duration == nil {
		return time.Time{}, false
	}
	return l.Start.Add(l.Duration.Std()), true
}

// StopAt closes the log at stop, deriving its duration in whole seconds.
func (l *Log) StopAt(stop time.Time) error {
	if l.Start == nil {
		return ErrNoStart
	}
	if stop.Before(*l.Start) {
		return ErrStopBeforeStart
	}
	d := timeparse.Duration(stop.Sub(*l.Start).Truncate(time.Second))
	l.Duration = &d
	return nil
}

// SetDurationOrStop closes the log with either an explicit duration or a
// stop time. Supplying both is an error; supplying neither is a no-op.
func (l *Log) SetDurationOrStop(d *timeparse.Duration, stop *time.Time) error {
	switch {
	case d != nil && stop != nil:
		return ErrDurationAndStop
	case d != nil:
		v := *d
		l.Duration = &v
		return nil
	case stop != nil:
		return l.StopAt(*stop)
	}
	return nil
}

// SetTags replaces the log's tags with their normalized form.
func (l *Log) SetTags(tags []string) error {
	normalized, err := NormalizeTags(tags)
	if err != nil {
		return err
	}
	l.Tags = normalized
	return nil
}
