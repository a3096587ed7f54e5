package model

import (
	"encoding/json"
	"fmt"
)

// State is the store-wide tracking state.
type State struct {
	ActiveLog *LogRef `json:"active_log"`
}

// LogRef addresses a log. On disk it is the array [project, task|null, log].
type LogRef struct {
	ProjectID string
	TaskID    TaskID
	LogID     LogID
}

// RefOf returns the address of l.
func RefOf(l *Log) *LogRef {
	return &LogRef{ProjectID: l.ProjectID, TaskID: l.TaskID, LogID: l.ID}
}

func (r LogRef) MarshalJSON() ([]byte, error) {
	var task *TaskID
	if r.TaskID != NoTask {
		task = &r.TaskID
	}
	return json.Marshal([]any{r.ProjectID, task, r.LogID})
}

func (r *LogRef) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("active log: expected 3 elements, got %d", len(parts))
	}
	var (
		project string
		task    *TaskID
		log     LogID
	)
	if err := json.Unmarshal(parts[0], &project); err != nil {
		return fmt.Errorf("active log project: %w", err)
	}
	if err := json.Unmarshal(parts[1], &task); err != nil {
		return fmt.Errorf("active log task: %w", err)
	}
	if err := json.Unmarshal(parts[2], &log); err != nil {
		return fmt.Errorf("active log id: %w", err)
	}
	r.ProjectID, r.LogID = project, log
	r.TaskID = NoTask
	if task != nil {
		r.TaskID = *task
	}
	return nil
}

func (r LogRef) String() string {
	if r.TaskID == NoTask {
		return fmt.Sprintf("%s/%d", r.ProjectID, r.LogID)
	}
	return fmt.Sprintf("%s/%d/%d", r.ProjectID, r.TaskID, r.LogID)
}
