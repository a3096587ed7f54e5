package tracker

import (
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/store"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

// AddLogParams describes a log recorded after the fact. At most one of
// Stop and Duration may be set.
type AddLogParams struct {
	ProjectID string
	TaskID    model.TaskID
	Start     *time.Time
	Stop      *time.Time
	Duration  *timeparse.Duration
	Comment   string
	Tags      []string
}

// AddLog saves a log without touching the tracking state.
func AddLog(s *store.Store, params AddLogParams) (*model.Log, error) {
	l := model.NewLog(model.Slugify(params.ProjectID), params.TaskID)
	l.Start = params.Start
	if err := l.SetDurationOrStop(params.Duration, params.Stop); err != nil {
		return nil, err
	}
	l.Comment = params.Comment
	if err := l.SetTags(params.Tags); err != nil {
		return nil, err
	}
	saved, err := s.SaveLog(l)
	if err != nil {
		return nil, err
	}
	logger(s).Debug("added log", "log", model.RefOf(saved).String())
	return saved, nil
}

// StartLogParams describes the log to start tracking. A nil Start means now.
type StartLogParams struct {
	ProjectID string
	TaskID    model.TaskID
	Start     *time.Time
	Comment   string
	Tags      []string
}

// StartLog begins tracking a new log, stopping the active one first. A log
// attached to a task moves that task to its in-progress state.
func StartLog(s *store.Store, params StartLogParams) (*model.Log, error) {
	projectID := model.Slugify(params.ProjectID)
	project, err := s.Project(projectID)
	if err != nil {
		return nil, err
	}
	var task *model.Task
	if params.TaskID != model.NoTask {
		if task, err = s.Task(project.ID, params.TaskID); err != nil {
			return nil, err
		}
	}

	st, err := s.State()
	if err != nil {
		return nil, err
	}
	if st.ActiveLog != nil {
		if _, err := StopLog(s, StopLogParams{}); err != nil {
			return nil, err
		}
	}

	start := s.Now()
	if params.Start != nil {
		start = *params.Start
	}
	l := model.NewLog(project.ID, params.TaskID)
	l.Start = &start
	l.Comment = params.Comment
	if err := l.SetTags(params.Tags); err != nil {
		return nil, err
	}
	saved, err := s.SaveLog(l)
	if err != nil {
		return nil, err
	}
	if err := s.SaveState(&model.State{ActiveLog: model.RefOf(saved)}); err != nil {
		return nil, err
	}

	if task != nil {
		states, err := s.TaskStateConfig(project)
		if err != nil {
			return nil, err
		}
		task.State = states.InProgress
		if _, err := s.SaveTask(task); err != nil {
			return nil, err
		}
	}
	logger(s).Debug("started log", "log", model.RefOf(saved).String(), "start", timeparse.Format(start))
	return saved, nil
}

// StopLogParams closes the active log. With neither Stop nor Duration the
// log stops now. Comment and Tags replace the log's own when non-nil.
type StopLogParams struct {
	Stop     *time.Time
	Duration *timeparse.Duration
	Comment  *string
	Tags     []string
}

// StopLog closes the active log and clears the tracking state.
func StopLog(s *store.Store, params StopLogParams) (*model.Log, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	if st.ActiveLog == nil {
		return nil, ErrNoActiveLog
	}
	ref := st.ActiveLog
	l, err := s.Log(ref.ProjectID, ref.TaskID, ref.LogID)
	if err != nil {
		return nil, err
	}

	if params.Stop == nil && params.Duration == nil {
		err = l.StopAt(s.Now())
	} else {
		err = l.SetDurationOrStop(params.Duration, params.Stop)
	}
	if err != nil {
		return nil, err
	}
	if params.Comment != nil {
		l.Comment = *params.Comment
	}
	if params.Tags != nil {
		if err := l.SetTags(params.Tags); err != nil {
			return nil, err
		}
	}

	saved, err := s.SaveLog(l)
	if err != nil {
		return nil, err
	}
	st.ActiveLog = nil
	if err := s.SaveState(st); err != nil {
		return nil, err
	}
	logger(s).Debug("stopped log", "log", ref.String(), "duration", saved.Duration.String())
	return saved, nil
}

// CancelLog deletes the active log and clears the tracking state. It
// returns nil when nothing is being tracked.
func CancelLog(s *store.Store) (*model.Log, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	if st.ActiveLog == nil {
		return nil, nil
	}
	ref := st.ActiveLog
	l, err := s.Log(ref.ProjectID, ref.TaskID, ref.LogID)
	if err != nil {
		return nil, err
	}
	if err := s.RemoveLog(l.ProjectID, l.TaskID, l.ID); err != nil {
		return nil, err
	}
	st.ActiveLog = nil
	if err := s.SaveState(st); err != nil {
		return nil, err
	}
	logger(s).Debug("cancelled log", "log", ref.String())
	return l, nil
}

// RemoveLog deletes a log. If it was the active log, tracking stops.
func RemoveLog(s *store.Store, projectID string, taskID model.TaskID, id model.LogID) error {
	projectID = model.Slugify(projectID)
	if err := s.RemoveLog(projectID, taskID, id); err != nil {
		return err
	}
	return clearActiveLogIf(s, func(ref *model.LogRef) bool {
		return *ref == model.LogRef{ProjectID: projectID, TaskID: taskID, LogID: id}
	})
}

// LogStatus is the active log and how long it has been running.
type LogStatus struct {
	Log       *model.Log
	ActiveFor timeparse.Duration
}

// Status returns the active log, or nil when nothing is being tracked.
// It never writes to the store.
func Status(s *store.Store) (*LogStatus, error) {
	st, err := s.PeekState()
	if err != nil {
		return nil, err
	}
	if st.ActiveLog == nil {
		return nil, nil
	}
	ref := st.ActiveLog
	l, err := s.Log(ref.ProjectID, ref.TaskID, ref.LogID)
	if err != nil {
		return nil, err
	}
	return &LogStatus{Log: l, ActiveFor: Elapsed(l, s.Now())}, nil
}

// Elapsed is how long l has been running at now, in whole seconds.
func Elapsed(l *model.Log, now time.Time) timeparse.Duration {
	if l.Start == nil || now.Before(*l.Start) {
		return 0
	}
	return timeparse.Duration(now.Sub(*l.Start).Truncate(time.Second))
}
