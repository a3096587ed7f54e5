package model

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/stefanpenner/loiter/pkg/query"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

type (
	ProjectSort = query.SortSpec[*Project]
	TaskSort    = query.SortSpec[*Task]
	LogSort     = query.SortSpec[*Log]
)

func compareTimes(a, b *time.Time) int {
	return query.CompareOptional(a, b, time.Time.Compare)
}

// ProjectField is a sortable project attribute.
type ProjectField int

const (
	ProjectByID ProjectField = iota
	ProjectByName
	ProjectByDescription
	ProjectByDeadline
)

func (f ProjectField) Compare(a, b *Project) int {
	switch f {
	case ProjectByID:
		return cmp.Compare(a.ID, b.ID)
	case ProjectByName:
		return cmp.Compare(a.Name, b.Name)
	case ProjectByDescription:
		return cmp.Compare(a.Description, b.Description)
	case ProjectByDeadline:
		return compareTimes(a.Deadline, b.Deadline)
	}
	return 0
}

func (f ProjectField) String() string {
	switch f {
	case ProjectByID:
		return "id"
	case ProjectByName:
		return "name"
	case ProjectByDescription:
		return "description"
	case ProjectByDeadline:
		return "deadline"
	}
	return fmt.Sprintf("ProjectField(%d)", int(f))
}

func ParseProjectField(s string) (query.Comparator[*Project], error) {
	switch strings.ToLower(s) {
	case "id":
		return ProjectByID, nil
	case "name":
		return ProjectByName, nil
	case "description", "desc":
		return ProjectByDescription, nil
	case "deadline":
		return ProjectByDeadline, nil
	}
	return nil, fmt.Errorf("%w for projects: %q", query.ErrUnrecognizedField, s)
}

func ParseProjectSort(s string) (ProjectSort, error) {
	return query.ParseSortSpec(s, ParseProjectField)
}

// DefaultProjectSort orders projects by name.
func DefaultProjectSort() ProjectSort {
	return query.NewSortSpec[*Project](ProjectByName, query.Asc)
}

// TaskField is a sortable task attribute.
type TaskField int

const (
	TaskByID TaskField = iota
	TaskByProject
	TaskByDescription
	TaskByPriority
	TaskByState
	TaskByDeadline
)

func (f TaskField) Compare(a, b *Task) int {
	switch f {
	case TaskByID:
		return cmp.Compare(a.ID, b.ID)
	case TaskByProject:
		return cmp.Compare(a.ProjectID, b.ProjectID)
	case TaskByDescription:
		return cmp.Compare(a.Description, b.Description)
	case TaskByPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case TaskByState:
		return cmp.Compare(a.State, b.State)
	case TaskByDeadline:
		return compareTimes(a.Deadline, b.Deadline)
	}
	return 0
}

func (f TaskField) String() string {
	switch f {
	case TaskByID:
		return "id"
	case TaskByProject:
		return "project-id"
	case TaskByDescription:
		return "description"
	case TaskByPriority:
		return "priority"
	case TaskByState:
		return "state"
	case TaskByDeadline:
		return "deadline"
	}
	return fmt.Sprintf("TaskField(%d)", int(f))
}

func ParseTaskField(s string) (query.Comparator[*Task], error) {
	switch strings.ToLower(s) {
	case "id":
		return TaskByID, nil
	case "project", "project-id", "project_id":
		return TaskByProject, nil
	case "description", "desc":
		return TaskByDescription, nil
	case "priority":
		return TaskByPriority, nil
	case "state":
		return TaskByState, nil
	case "deadline":
		return TaskByDeadline, nil
	}
	return nil, fmt.Errorf("%w for tasks: %q", query.ErrUnrecognizedField, s)
}

func ParseTaskSort(s string) (TaskSort, error) {
	return query.ParseSortSpec(s, ParseTaskField)
}

// DefaultTaskSort orders tasks by priority, then project, then ID.
func DefaultTaskSort() TaskSort {
	return query.NewSortSpec[*Task](TaskByPriority, query.Asc).
		Then(TaskByProject, query.Asc).
		Then(TaskByID, query.Asc)
}

// LogField is a sortable log attribute.
type LogField int

const (
	LogByID LogField = iota
	LogByProject
	LogByTask
	LogByStart
	LogByDuration
	LogByComment
)

func (f LogField) Compare(a, b *Log) int {
	switch f {
	case LogByID:
		return cmp.Compare(a.ID, b.ID)
	case LogByProject:
		return cmp.Compare(a.ProjectID, b.ProjectID)
	case LogByTask:
		return cmp.Compare(a.TaskID, b.TaskID)
	case LogByStart:
		return compareTimes(a.Start, b.Start)
	case LogByDuration:
		return query.CompareOptional(a.Duration, b.Duration, cmp.Compare[timeparse.Duration])
	case LogByComment:
		return cmp.Compare(a.Comment, b.Comment)
	}
	return 0
}

func (f LogField) String() string {
	switch f {
	case LogByID:
		return "id"
	case LogByProject:
		return "project-id"
	case LogByTask:
		return "task-id"
	case LogByStart:
		return "start"
	case LogByDuration:
		return "duration"
	case LogByComment:
		return "comment"
	}
	return fmt.Sprintf("LogField(%d)", int(f))
}

func ParseLogField(s string) (query.Comparator[*Log], error) {
	switch strings.ToLower(s) {
	case "id":
		return LogByID, nil
	case "project", "project-id", "project_id":
		return LogByProject, nil
	case "task", "task-id", "task_id":
		return LogByTask, nil
	case "start":
		return LogByStart, nil
	case "duration":
		return LogByDuration, nil
	case "comment":
		return LogByComment, nil
	}
	return nil, fmt.Errorf("%w for logs: %q", query.ErrUnrecognizedField, s)
}

func ParseLogSort(s string) (LogSort, error) {
	return query.ParseSortSpec(s, ParseLogField)
}

// DefaultLogSort orders logs by project, then task, then ID.
func DefaultLogSort() LogSort {
	return query.NewSortSpec[*Log](LogByProject, query.Asc).
		Then(LogByTask, query.Asc).
		Then(LogByID, query.Asc)
}
