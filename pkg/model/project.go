package model

import "time"

// Project groups tasks and logs. Its ID is the slug of its name and only
// appears on disk as the project's directory name.
type Project struct {
	ID              string           `json:"-"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	TaskStateConfig *TaskStateConfig `json:"task_state_config,omitempty"`
}

// NewProject returns a project whose ID is derived from name.
func NewProject(name string) *Project {
	return &Project{ID: Slugify(name), Name: name}
}

// SetTags replaces the project's tags with their normalized form.
func (p *Project) SetTags(tags []string) error {
	normalized, err := NormalizeTags(tags)
	if err != nil {
		return err
	}
	p.Tags = normalized
	return nil
}

// TaskStates returns the project's own task state config, or def if it has none.
func (p *Project) TaskStates(def TaskStateConfig) TaskStateConfig {
	if p.TaskStateConfig != nil {
		return *p.TaskStateConfig
	}
	return def
}
