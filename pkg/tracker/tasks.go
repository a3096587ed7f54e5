package tracker

import (
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/store"
)

// AddTaskParams describes a new task. Zero values take the defaults: the
// project's initial state and the lowest priority.
type AddTaskParams struct {
	ProjectID   string
	Description string
	State       string
	Priority    int
	Deadline    *time.Time
	Tags        []string
}

// AddTask creates a task in an existing project.
func AddTask(s *store.Store, params AddTaskParams) (*model.Task, error) {
	t := model.NewTask(model.Slugify(params.ProjectID), params.Description)
	t.State = params.State
	if params.Priority != 0 {
		t.Priority = params.Priority
	}
	t.Deadline = params.Deadline
	if err := t.SetTags(params.Tags); err != nil {
		return nil, err
	}
	saved, err := s.SaveTask(t)
	if err != nil {
		return nil, err
	}
	logger(s).Debug("added task", "project", saved.ProjectID, "task", saved.ID)
	return saved, nil
}

// UpdateTasksParams changes the non-nil fields of one or more tasks.
type UpdateTasksParams struct {
	ProjectID   string
	TaskIDs     []model.TaskID
	Description *string
	State       *string
	Priority    *int
	Deadline    *time.Time
	Tags        []string // nil leaves tags unchanged
}

// UpdateTasks applies params to every listed task. It stops at the first
// failure; tasks before it stay updated.
func UpdateTasks(s *store.Store, params UpdateTasksParams) ([]*model.Task, error) {
	projectID := model.Slugify(params.ProjectID)
	var updated []*model.Task
	for _, id := range params.TaskIDs {
		t, err := s.Task(projectID, id)
		if err != nil {
			return updated, err
		}
		if params.Description != nil {
			t.Description = *params.Description
		}
		if params.State != nil {
			t.State = *params.State
		}
		if params.Priority != nil {
			t.Priority = *params.Priority
		}
		if params.Deadline != nil {
			t.Deadline = params.Deadline
		}
		if params.Tags != nil {
			if err := t.SetTags(params.Tags); err != nil {
				return updated, err
			}
		}
		saved, err := s.SaveTask(t)
		if err != nil {
			return updated, err
		}
		logger(s).Debug("updated task", "project", saved.ProjectID, "task", saved.ID)
		updated = append(updated, saved)
	}
	return updated, nil
}

// DoneTasks moves the listed tasks to their project's done state.
func DoneTasks(s *store.Store, projectID string, ids []model.TaskID) ([]*model.Task, error) {
	states, err := TaskStates(s, projectID)
	if err != nil {
		return nil, err
	}
	return UpdateTasks(s, UpdateTasksParams{ProjectID: projectID, TaskIDs: ids, State: &states.Done})
}

// RemoveTask deletes a task and its logs. If the active log belonged to
// it, tracking stops.
func RemoveTask(s *store.Store, projectID string, id model.TaskID) error {
	projectID = model.Slugify(projectID)
	if err := s.RemoveTask(projectID, id); err != nil {
		return err
	}
	return clearActiveLogIf(s, func(ref *model.LogRef) bool {
		return ref.ProjectID == projectID && ref.TaskID == id
	})
}
