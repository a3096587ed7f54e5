package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
)

// Projects returns every project matching spec.
func (s *Store) Projects(spec model.ProjectFilter) ([]*model.Project, error) {
	return s.projects(spec, s.Now())
}

// Tasks returns the tasks matching tspec within the projects matching pspec.
// Tasks of non-matching projects are never loaded.
func (s *Store) Tasks(pspec model.ProjectFilter, tspec model.TaskFilter) ([]*model.Task, error) {
	now := s.Now()
	projects, err := s.projects(pspec, now)
	if err != nil {
		return nil, err
	}
	var tasks []*model.Task
	for _, p := range projects {
		pt, err := s.projectTasks(p.ID, tspec, now)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, pt...)
	}
	return tasks, nil
}

// ProjectTasks returns the tasks of one project matching spec.
func (s *Store) ProjectTasks(projectID string, spec model.TaskFilter) ([]*model.Task, error) {
	return s.projectTasks(projectID, spec, s.Now())
}

// Logs returns the logs matching lspec, drawn from the projects matching
// pspec and the tasks matching tspec.
//
// A task filter implies that only task logs are wanted, unless lspec
// already picks tasks itself. When lspec can only match task logs, the
// project-level logs folders are not read at all.
func (s *Store) Logs(pspec model.ProjectFilter, tspec model.TaskFilter, lspec model.LogFilter) ([]*model.Log, error) {
	now := s.Now()
	if !tspec.IsPassthrough() && !lspec.Any(model.IsLogTasksFilter) {
		lspec = lspec.And(model.LogHasTask{})
	}

	projects, err := s.projects(pspec, now)
	if err != nil {
		return nil, err
	}

	var logs []*model.Log
	if lspec.Any(model.RequiresTask) {
		s.logger().Debug("log filter requires a task, skipping project logs")
	} else {
		for _, p := range projects {
			pl, err := s.logsIn(p.ID, model.NoTask, lspec, now)
			if err != nil {
				return nil, err
			}
			logs = append(logs, pl...)
		}
	}

	for _, p := range projects {
		tasks, err := s.projectTasks(p.ID, tspec, now)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			tl, err := s.logsIn(p.ID, t.ID, lspec, now)
			if err != nil {
				return nil, err
			}
			logs = append(logs, tl...)
		}
	}
	return logs, nil
}

// LogsFor returns the logs of a single project (taskID model.NoTask) or
// task matching spec.
func (s *Store) LogsFor(projectID string, taskID model.TaskID, spec model.LogFilter) ([]*model.Log, error) {
	return s.logsIn(projectID, taskID, spec, s.Now())
}

func (s *Store) projects(spec model.ProjectFilter, now time.Time) ([]*model.Project, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, s.Root, err)
	}

	var projects []*model.Project
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		id := entry.Name()
		if !isFile(s.ProjectPath(id)) {
			continue
		}
		p, err := s.loadProject(id)
		if err != nil {
			return nil, err
		}
		if !spec.Matches(p, now) {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *Store) projectTasks(projectID string, spec model.TaskFilter, now time.Time) ([]*model.Task, error) {
	dir := s.TasksDir(projectID)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, dir, err)
	}

	var tasks []*model.Task
	for _, entry := range entries {
		id, ok := taskEntryID(entry)
		if !ok {
			s.logger().Debug("skipping unrecognized task entry", "project", projectID, "name", entry.Name())
			continue
		}
		if !isFile(s.TaskPath(projectID, model.TaskID(id))) {
			continue
		}
		t, err := s.loadTask(projectID, model.TaskID(id))
		if err != nil {
			return nil, err
		}
		if spec.Matches(t, now) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *Store) logsIn(projectID string, taskID model.TaskID, spec model.LogFilter, now time.Time) ([]*model.Log, error) {
	dir := s.LogsDir(projectID, taskID)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, dir, err)
	}

	var logs []*model.Log
	for _, entry := range entries {
		id, ok := logEntryID(entry)
		if !ok {
			continue
		}
		l, err := s.loadLog(projectID, taskID, model.LogID(id))
		if err != nil {
			return nil, err
		}
		if spec.Matches(l, now) {
			logs = append(logs, l)
		}
	}
	return logs, nil
}
