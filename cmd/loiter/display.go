package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/timeparse"
	"github.com/stefanpenner/loiter/pkg/tracker"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatJSON
	formatYAML
)

func parseFormat(s string) (outputFormat, error) {
	switch strings.ToLower(s) {
	case "", "table", "text":
		return formatTable, nil
	case "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	default:
		return formatTable, fmt.Errorf("unknown output format: %s (use table, json or yaml)", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// emit writes v as JSON or YAML, or calls text for the table format.
func (e *env) emit(v any, text func(w io.Writer)) error {
	switch e.format {
	case formatJSON:
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(e.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(e.out)
		return nil
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeparse.Format(*t)
}

func formatDuration(d *timeparse.Duration) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatTaskID(id model.TaskID) string {
	if id == model.NoTask {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Map helpers for JSON and YAML output

func projectToMap(p *model.Project) map[string]any {
	m := map[string]any{
		"id":   p.ID,
		"name": p.Name,
		"tags": nonNil(p.Tags),
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.Deadline != nil {
		m["deadline"] = p.Deadline.Format(time.RFC3339)
	}
	if p.TaskStateConfig != nil {
		m["task_states"] = statesToMap(*p.TaskStateConfig)
	}
	return m
}

func projectsToMap(projects []*model.Project) []map[string]any {
	result := []map[string]any{}
	for _, p := range projects {
		result = append(result, projectToMap(p))
	}
	return result
}

func taskToMap(t *model.Task) map[string]any {
	m := map[string]any{
		"project":     t.ProjectID,
		"id":          uint32(t.ID),
		"priority":    t.Priority,
		"description": t.Description,
		"state":       t.State,
		"tags":        nonNil(t.Tags),
	}
	if t.Deadline != nil {
		m["deadline"] = t.Deadline.Format(time.RFC3339)
	}
	return m
}

func tasksToMap(tasks []*model.Task) []map[string]any {
	result := []map[string]any{}
	for _, t := range tasks {
		result = append(result, taskToMap(t))
	}
	return result
}

func logToMap(l *model.Log) map[string]any {
	m := map[string]any{
		"project": l.ProjectID,
		"id":      uint32(l.ID),
		"active":  l.IsActive(),
		"tags":    nonNil(l.Tags),
	}
	if l.HasTask() {
		m["task"] = uint32(l.TaskID)
	}
	if l.Start != nil {
		m["start"] = l.Start.Format(time.RFC3339)
	}
	if l.Duration != nil {
		m["duration"] = l.Duration.String()
		m["seconds"] = l.Duration.Seconds()
	}
	if stop, ok := l.Stop(); ok {
		m["stop"] = stop.Format(time.RFC3339)
	}
	if l.Comment != "" {
		m["comment"] = l.Comment
	}
	return m
}

func logsToMap(logs []*model.Log) []map[string]any {
	result := []map[string]any{}
	for _, l := range logs {
		result = append(result, logToMap(l))
	}
	return result
}

func statusToMap(st *tracker.LogStatus) map[string]any {
	if st == nil {
		return map[string]any{"active": false}
	}
	return map[string]any{
		"active":     true,
		"log":        logToMap(st.Log),
		"active_for": st.ActiveFor.String(),
		"seconds":    st.ActiveFor.Seconds(),
	}
}

func statesToMap(c model.TaskStateConfig) map[string]any {
	return map[string]any{
		"states":      c.States,
		"initial":     c.Initial,
		"in_progress": c.InProgress,
		"done":        c.Done,
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Table renderers

func printProjects(w io.Writer, projects []*model.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	var rows [][]string
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, p.Description, formatTime(p.Deadline), strings.Join(p.Tags, ",")})
	}
	renderTable(w, []string{"ID", "NAME", "DESCRIPTION", "DEADLINE", "TAGS"}, rows)
}

func printTasks(w io.Writer, tasks []*model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	var rows [][]string
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ProjectID,
			formatTaskID(t.ID),
			strconv.Itoa(t.Priority),
			t.State,
			t.Description,
			formatTime(t.Deadline),
			strings.Join(t.Tags, ","),
		})
	}
	renderTable(w, []string{"PROJECT", "ID", "PRI", "STATE", "DESCRIPTION", "DEADLINE", "TAGS"}, rows)
}

func printLogs(w io.Writer, logs []*model.Log) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No logs.")
		return
	}
	var rows [][]string
	var total timeparse.Duration
	for _, l := range logs {
		d := formatDuration(l.Duration)
		if l.Duration != nil {
			total += *l.Duration
		} else if l.IsActive() {
			d = "active"
		}
		rows = append(rows, []string{
			l.ProjectID,
			formatTaskID(l.TaskID),
			strconv.FormatUint(uint64(l.ID), 10),
			formatTime(l.Start),
			d,
			l.Comment,
			strings.Join(l.Tags, ","),
		})
	}
	renderTable(w, []string{"PROJECT", "TASK", "ID", "START", "DURATION", "COMMENT", "TAGS"}, rows)
	fmt.Fprintf(w, "Total: %s\n", total)
}

func printStatus(w io.Writer, st *tracker.LogStatus) {
	if st == nil {
		fmt.Fprintln(w, "Not tracking.")
		return
	}
	l := st.Log
	fmt.Fprintf(w, "Tracking %s for %s\n", model.RefOf(l), st.ActiveFor)
	fmt.Fprintf(w, "Started: %s\n", formatTime(l.Start))
	if l.Comment != "" {
		fmt.Fprintf(w, "Comment: %s\n", l.Comment)
	}
	if len(l.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(l.Tags, ", "))
	}
}

func printStates(w io.Writer, c model.TaskStateConfig) {
	for _, state := range c.States {
		var marks []string
		if state == c.Initial {
			marks = append(marks, "initial")
		}
		if state == c.InProgress {
			marks = append(marks, "in progress")
		}
		if state == c.Done {
			marks = append(marks, "done")
		}
		if len(marks) > 0 {
			fmt.Fprintf(w, "%s (%s)\n", state, strings.Join(marks, ", "))
		} else {
			fmt.Fprintln(w, state)
		}
	}
}
