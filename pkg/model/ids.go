package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TaskID numbers a task within its project, starting at 1.
type TaskID uint32

// LogID numbers a log within its project or task, starting at 1.
type LogID uint32

// NoTask is the TaskID of logs attached directly to a project.
const NoTask TaskID = 0

// ParseTaskID parses a positive decimal task ID. Zero-padded forms such as
// "0007" are accepted.
func ParseTaskID(s string) (TaskID, error) {
	n, err := parseID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: task id %q", ErrInvalidIdentifier, s)
	}
	return TaskID(n), nil
}

// ParseLogID parses a positive decimal log ID.
func ParseLogID(s string) (LogID, error) {
	n, err := parseID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: log id %q", ErrInvalidIdentifier, s)
	}
	return LogID(n), nil
}

func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("zero id")
	}
	return uint32(n), nil
}

// ParseTaskIDs parses a comma-separated list of task IDs.
func ParseTaskIDs(s string) ([]TaskID, error) {
	var ids []TaskID
	for _, part := range SplitList(s) {
		id, err := ParseTaskID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DirName is the name of the task's directory, e.g. "0007".
func (id TaskID) DirName() string {
	return fmt.Sprintf("%04d", uint32(id))
}

// FileName is the name of the log's file, e.g. "00012.json".
func (id LogID) FileName() string {
	return fmt.Sprintf("%05d.json", uint32(id))
}

// SplitList splits a comma-separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
