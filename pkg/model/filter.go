package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/stefanpenner/loiter/pkg/query"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

type (
	ProjectFilter = query.FilterSpec[*Project]
	TaskFilter    = query.FilterSpec[*Task]
	LogFilter     = query.FilterSpec[*Log]
)

// AllProjects, AllTasks and AllLogs return passthrough specs.
func AllProjects() ProjectFilter { return query.NewFilterSpec[*Project]() }
func AllTasks() TaskFilter       { return query.NewFilterSpec[*Task]() }
func AllLogs() LogFilter         { return query.NewFilterSpec[*Log]() }

func deadlineMatches(f timeparse.TimestampFilter, deadline *time.Time, now time.Time) bool {
	return deadline != nil && f.Matches(*deadline, now)
}

func joinIDs[T any](ids []T) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

// ProjectIDs matches projects with any of the given IDs.
type ProjectIDs []string

func (f ProjectIDs) Matches(p *Project, _ time.Time) bool { return slices.Contains(f, p.ID) }
func (f ProjectIDs) String() string                      { return "id in " + joinIDs(f) }

// ProjectDeadline matches projects whose deadline falls in the range.
type ProjectDeadline timeparse.TimestampFilter

func (f ProjectDeadline) Matches(p *Project, now time.Time) bool {
	return deadlineMatches(timeparse.TimestampFilter(f), p.Deadline, now)
}
func (f ProjectDeadline) String() string { return "deadline " + timeparse.TimestampFilter(f).String() }

// ProjectTags matches projects carrying at least one of the tags.
type ProjectTags []string

func (f ProjectTags) Matches(p *Project, _ time.Time) bool { return query.TagsIntersect(p.Tags, f) }
func (f ProjectTags) String() string                      { return "tags in " + joinIDs(f) }

// TaskProject matches tasks belonging to any of the given projects.
type TaskProject []string

func (f TaskProject) Matches(t *Task, _ time.Time) bool { return slices.Contains(f, t.ProjectID) }
func (f TaskProject) String() string                   { return "project in " + joinIDs(f) }

// TaskIDs matches tasks with any of the given IDs.
type TaskIDs []TaskID

func (f TaskIDs) Matches(t *Task, _ time.Time) bool { return slices.Contains(f, t.ID) }
func (f TaskIDs) String() string                   { return "id in " + joinIDs(f) }

// TaskPriorities matches tasks with any of the given priorities.
type TaskPriorities []int

func (f TaskPriorities) Matches(t *Task, _ time.Time) bool { return slices.Contains(f, t.Priority) }
func (f TaskPriorities) String() string                   { return "priority in " + joinIDs(f) }

// TaskStates matches tasks in any of the given states.
type TaskStates []string

func (f TaskStates) Matches(t *Task, _ time.Time) bool { return slices.Contains(f, t.State) }
func (f TaskStates) String() string                   { return "state in " + joinIDs(f) }

// TaskStateNot matches tasks that are not in the given state, including
// tasks with no state at all.
type TaskStateNot string

func (f TaskStateNot) Matches(t *Task, _ time.Time) bool { return t.State != string(f) }
func (f TaskStateNot) String() string                   { return "state not " + string(f) }

// TaskDeadline matches tasks whose deadline falls in the range.
type TaskDeadline timeparse.TimestampFilter

func (f TaskDeadline) Matches(t *Task, now time.Time) bool {
	return deadlineMatches(timeparse.TimestampFilter(f), t.Deadline, now)
}
func (f TaskDeadline) String() string { return "deadline " + timeparse.TimestampFilter(f).String() }

// TaskTags matches tasks carrying at least one of the tags.
type TaskTags []string

func (f TaskTags) Matches(t *Task, _ time.Time) bool { return query.TagsIntersect(t.Tags, f) }
func (f TaskTags) String() string                   { return "tags in " + joinIDs(f) }

// LogProject matches logs belonging to any of the given projects.
type LogProject []string

func (f LogProject) Matches(l *Log, _ time.Time) bool { return slices.Contains(f, l.ProjectID) }
func (f LogProject) String() string                  { return "project in " + joinIDs(f) }

// LogHasTask matches logs attached to a task.
type LogHasTask struct{}

func (LogHasTask) Matches(l *Log, _ time.Time) bool { return l.HasTask() }
func (LogHasTask) String() string                   { return "has task" }

// LogTasks matches logs attached to any of the given tasks.
type LogTasks []TaskID

func (f LogTasks) Matches(l *Log, _ time.Time) bool { return l.HasTask() && slices.Contains(f, l.TaskID) }
func (f LogTasks) String() string                  { return "task in " + joinIDs(f) }

// LogStart matches logs whose start falls in the range.
type LogStart timeparse.TimestampFilter

func (f LogStart) Matches(l *Log, now time.Time) bool {
	return l.Start != nil && timeparse.TimestampFilter(f).Matches(*l.Start, now)
}
func (f LogStart) String() string { return "start " + timeparse.TimestampFilter(f).String() }

// LogDuration matches closed logs whose duration satisfies the comparison.
type LogDuration timeparse.DurationFilter

func (f LogDuration) Matches(l *Log, _ time.Time) bool {
	return l.Duration != nil && timeparse.DurationFilter(f).Matches(*l.Duration)
}
func (f LogDuration) String() string { return "duration " + timeparse.DurationFilter(f).String() }

// LogTags matches logs carrying at least one of the tags.
type LogTags []string

func (f LogTags) Matches(l *Log, _ time.Time) bool { return query.TagsIntersect(l.Tags, f) }
func (f LogTags) String() string                  { return "tags in " + joinIDs(f) }

// IsLogTasksFilter reports whether f selects logs by task ID.
func IsLogTasksFilter(f query.Filter[*Log]) bool {
	_, ok := f.(LogTasks)
	return ok
}

// RequiresTask reports whether f can only match logs attached to a task.
func RequiresTask(f query.Filter[*Log]) bool {
	switch f.(type) {
	case LogHasTask, LogTasks:
		return true
	}
	return false
}
