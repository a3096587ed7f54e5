package model

import (
	"fmt"
	"time"
)

const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = MaxPriority
)

// Task is a unit of work within a project. Lower priority values mean
// higher priority.
type Task struct {
	ProjectID   string     `json:"-"`
	ID          TaskID     `json:"-"`
	Priority    int        `json:"priority"`
	Description string     `json:"description"`
	State       string     `json:"state,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// NewTask returns an unsaved task with the default priority.
func NewTask(projectID, description string) *Task {
	return &Task{ProjectID: projectID, Description: description, Priority: DefaultPriority}
}

// SetTags replaces the task's tags with their normalized form.
func (t *Task) SetTags(tags []string) error {
	normalized, err := NormalizeTags(tags)
	if err != nil {
		return err
	}
	t.Tags = normalized
	return nil
}

// ValidatePriority checks that p is within [MinPriority, MaxPriority].
func ValidatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidPriority, p, MinPriority, MaxPriority)
	}
	return nil
}
