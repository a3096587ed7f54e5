package tracker

import (
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/store"
)

// AddProjectParams describes a new project.
type AddProjectParams struct {
	Name        string
	Description string
	Deadline    *time.Time
	Tags        []string
}

// AddProject creates a project. Saving over an existing project with the
// same slug replaces its metadata.
func AddProject(s *store.Store, params AddProjectParams) (*model.Project, error) {
	p := model.NewProject(params.Name)
	p.Description = params.Description
	p.Deadline = params.Deadline
	if err := p.SetTags(params.Tags); err != nil {
		return nil, err
	}
	if err := s.SaveProject(p); err != nil {
		return nil, err
	}
	logger(s).Debug("created project", "project", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProjectParams changes the non-nil fields of a project.
type UpdateProjectParams struct {
	ID          string
	Name        *string
	Description *string
	Deadline    *time.Time
	Tags        []string // nil leaves tags unchanged
}

// UpdateProject applies params to a project. Changing the name renames the
// project, and an active log inside it keeps being tracked.
func UpdateProject(s *store.Store, params UpdateProjectParams) (*model.Project, error) {
	p, err := s.Project(params.ID)
	if err != nil {
		return nil, err
	}
	oldID := p.ID

	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Deadline != nil {
		p.Deadline = params.Deadline
	}
	if params.Tags != nil {
		if err := p.SetTags(params.Tags); err != nil {
			return nil, err
		}
	}
	if params.Name == nil {
		if err := s.SaveProject(p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p.Name = *params.Name
	p.ID = model.Slugify(p.Name)
	if err := s.RenameProject(oldID, p); err != nil {
		return nil, err
	}
	if p.ID != oldID {
		if err := moveActiveLog(s, oldID, p.ID); err != nil {
			return nil, err
		}
	}
	logger(s).Debug("updated project", "project", p.ID)
	return p, nil
}

func moveActiveLog(s *store.Store, from, to string) error {
	st, err := s.State()
	if err != nil {
		return err
	}
	if st.ActiveLog == nil || st.ActiveLog.ProjectID != from {
		return nil
	}
	st.ActiveLog.ProjectID = to
	return s.SaveState(st)
}

// RemoveProject deletes a project. If the active log belonged to it,
// tracking stops.
func RemoveProject(s *store.Store, id string) error {
	p, err := s.Project(id)
	if err != nil {
		return err
	}
	if err := s.RemoveProject(p.ID); err != nil {
		return err
	}
	return clearActiveLogIf(s, func(ref *model.LogRef) bool { return ref.ProjectID == p.ID })
}

func clearActiveLogIf(s *store.Store, pred func(*model.LogRef) bool) error {
	st, err := s.State()
	if err != nil {
		return err
	}
	if st.ActiveLog == nil || !pred(st.ActiveLog) {
		return nil
	}
	logger(s).Debug("clearing active log", "log", st.ActiveLog.String())
	st.ActiveLog = nil
	return s.SaveState(st)
}

// TaskStates returns the task states of a project, or the configured
// defaults when projectID is empty.
func TaskStates(s *store.Store, projectID string) (model.TaskStateConfig, error) {
	var project *model.Project
	if projectID != "" {
		p, err := s.Project(projectID)
		if err != nil {
			return model.TaskStateConfig{}, err
		}
		project = p
	}
	return s.TaskStateConfig(project)
}
