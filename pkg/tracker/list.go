package tracker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/store"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

// ProjectQuery holds textual project filters. Lists are comma-separated;
// empty fields don't filter, and neither does a tag list with no tags in
// it such as ",".
type ProjectQuery struct {
	IDs      string
	Deadline string
	Tags     string
}

// TaskQuery holds textual task filters.
type TaskQuery struct {
	IDs        string
	States     string
	NotState   string
	Priorities string
	Deadline   string
	Tags       string
}

// LogQuery holds textual log filters.
type LogQuery struct {
	Start    string
	Duration string
	Tags     string
}

// ListProjectsParams filters and sorts a project listing. An empty Sort
// uses the default order.
type ListProjectsParams struct {
	Projects ProjectQuery
	Sort     string
}

// ListTasksParams filters and sorts a task listing.
type ListTasksParams struct {
	Projects ProjectQuery
	Tasks    TaskQuery
	Sort     string
}

// ListLogsParams filters and sorts a log listing.
type ListLogsParams struct {
	Projects ProjectQuery
	Tasks    TaskQuery
	Logs     LogQuery
	Sort     string
}

// ProjectFilter builds a filter spec from q, resolving relative times at now.
func (q ProjectQuery) ProjectFilter(now time.Time) (model.ProjectFilter, error) {
	spec := model.AllProjects()
	if q.IDs != "" {
		var ids model.ProjectIDs
		for _, id := range model.SplitList(q.IDs) {
			ids = append(ids, model.Slugify(id))
		}
		spec = spec.And(ids)
	}
	if q.Deadline != "" {
		f, err := timeparse.ParseTimestampFilter(q.Deadline, now)
		if err != nil {
			return spec, err
		}
		spec = spec.And(model.ProjectDeadline(f))
	}
	if q.Tags != "" {
		tags, err := model.ParseTags(q.Tags)
		if err != nil {
			return spec, err
		}
		if len(tags) > 0 {
			spec = spec.And(model.ProjectTags(tags))
		}
	}
	return spec, nil
}

// TaskFilter builds a filter spec from q, resolving relative times at now.
func (q TaskQuery) TaskFilter(now time.Time) (model.TaskFilter, error) {
	spec := model.AllTasks()
	if q.IDs != "" {
		ids, err := model.ParseTaskIDs(q.IDs)
		if err != nil {
			return spec, err
		}
		spec = spec.And(model.TaskIDs(ids))
	}
	if q.States != "" {
		spec = spec.And(model.TaskStates(model.SplitList(q.States)))
	}
	if q.NotState != "" {
		spec = spec.And(model.TaskStateNot(q.NotState))
	}
	if q.Priorities != "" {
		var priorities model.TaskPriorities
		for _, p := range model.SplitList(q.Priorities) {
			n, err := strconv.Atoi(p)
			if err != nil {
				return spec, fmt.Errorf("%w: %q", model.ErrInvalidPriority, p)
			}
			priorities = append(priorities, n)
		}
		spec = spec.And(priorities)
	}
	if q.Deadline != "" {
		f, err := timeparse.ParseTimestampFilter(q.Deadline, now)
		if err != nil {
			return spec, err
		}
		spec = spec.And(model.TaskDeadline(f))
	}
	if q.Tags != "" {
		tags, err := model.ParseTags(q.Tags)
		if err != nil {
			return spec, err
		}
		if len(tags) > 0 {
			spec = spec.And(model.TaskTags(tags))
		}
	}
	return spec, nil
}

// LogFilter builds a filter spec from q, resolving relative times at now.
func (q LogQuery) LogFilter(now time.Time) (model.LogFilter, error) {
	spec := model.AllLogs()
	if q.Start != "" {
		f, err := timeparse.ParseTimestampFilter(q.Start, now)
		if err != nil {
			return spec, err
		}
		spec = spec.And(model.LogStart(f))
	}
	if q.Duration != "" {
		f, err := timeparse.ParseDurationFilter(q.Duration)
		if err != nil {
			return spec, err
		}
		spec = spec.And(model.LogDuration(f))
	}
	if q.Tags != "" {
		tags, err := model.ParseTags(q.Tags)
		if err != nil {
			return spec, err
		}
		if len(tags) > 0 {
			spec = spec.And(model.LogTags(tags))
		}
	}
	return spec, nil
}

// ListProjects returns the matching projects, sorted.
func ListProjects(s *store.Store, params ListProjectsParams) ([]*model.Project, error) {
	sort := model.DefaultProjectSort()
	if params.Sort != "" {
		var err error
		if sort, err = model.ParseProjectSort(params.Sort); err != nil {
			return nil, err
		}
	}
	pspec, err := params.Projects.ProjectFilter(s.Now())
	if err != nil {
		return nil, err
	}
	logger(s).Debug("listing projects", "filter", pspec.String(), "sort", sort.String())
	projects, err := s.Projects(pspec)
	if err != nil {
		return nil, err
	}
	sort.Sort(projects)
	return projects, nil
}

// ListTasks returns the matching tasks, sorted.
func ListTasks(s *store.Store, params ListTasksParams) ([]*model.Task, error) {
	sort := model.DefaultTaskSort()
	if params.Sort != "" {
		var err error
		if sort, err = model.ParseTaskSort(params.Sort); err != nil {
			return nil, err
		}
	}
	now := s.Now()
	pspec, err := params.Projects.ProjectFilter(now)
	if err != nil {
		return nil, err
	}
	tspec, err := params.Tasks.TaskFilter(now)
	if err != nil {
		return nil, err
	}
	logger(s).Debug("listing tasks", "projects", pspec.String(), "tasks", tspec.String(), "sort", sort.String())
	tasks, err := s.Tasks(pspec, tspec)
	if err != nil {
		return nil, err
	}
	sort.Sort(tasks)
	return tasks, nil
}

// ListLogs returns the matching logs, sorted.
func ListLogs(s *store.Store, params ListLogsParams) ([]*model.Log, error) {
	sort := model.DefaultLogSort()
	if params.Sort != "" {
		var err error
		if sort, err = model.ParseLogSort(params.Sort); err != nil {
			return nil, err
		}
	}
	now := s.Now()
	pspec, err := params.Projects.ProjectFilter(now)
	if err != nil {
		return nil, err
	}
	tspec, err := params.Tasks.TaskFilter(now)
	if err != nil {
		return nil, err
	}
	lspec, err := params.Logs.LogFilter(now)
	if err != nil {
		return nil, err
	}
	logger(s).Debug("listing logs", "projects", pspec.String(), "tasks", tspec.String(), "logs", lspec.String(), "sort", sort.String())
	logs, err := s.Logs(pspec, tspec, lspec)
	if err != nil {
		return nil, err
	}
	sort.Sort(logs)
	return logs, nil
}
