package main

import (
	"io"

	"github.com/stefanpenner/loiter/pkg/tracker"
)

// Flags shared by the listings that filter on projects or tasks.

func (c *Command) projectQueryFlags(prefix string) *tracker.ProjectQuery {
	q := &tracker.ProjectQuery{}
	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "-" + s
	}
	ids := "ids"
	if prefix != "" {
		ids = "projects"
	}
	c.Flags.StringVar(&q.IDs, ids, "", "Comma-separated project ids")
	c.Flags.StringVar(&q.Deadline, name("deadline"), "", "Project deadline filter, e.g. 'this-week' or 'before 2021-12-01'")
	c.Flags.StringVar(&q.Tags, name("tags"), "", "Projects with any of these tags")
	return q
}

func (c *Command) taskQueryFlags(prefix string) *tracker.TaskQuery {
	q := &tracker.TaskQuery{}
	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "-" + s
	}
	ids := "ids"
	if prefix != "" {
		ids = "tasks"
	}
	c.Flags.StringVar(&q.IDs, ids, "", "Comma-separated task ids")
	c.Flags.StringVar(&q.States, name("states"), "", "Tasks in any of these states")
	c.Flags.StringVar(&q.NotState, name("not-state"), "", "Tasks not in this state")
	c.Flags.StringVar(&q.Priorities, name("priorities"), "", "Comma-separated priorities")
	c.Flags.StringVar(&q.Deadline, name("deadline"), "", "Task deadline filter")
	c.Flags.StringVar(&q.Tags, name("tags"), "", "Tasks with any of these tags")
	return q
}

func lsProjectsCmd() *Command {
	c := newCommand("ls projects [flags]", "List projects")
	projects := c.projectQueryFlags("")
	sort := c.Flags.String("sort", "", "Sort keys, e.g. 'deadline:desc,name'")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		result, err := tracker.ListProjects(e.store, tracker.ListProjectsParams{
			Projects: *projects,
			Sort:     *sort,
		})
		if err != nil {
			return err
		}
		return e.emit(projectsToMap(result), func(w io.Writer) {
			printProjects(w, result)
		})
	}
	return c
}

func lsTasksCmd() *Command {
	c := newCommand("ls tasks [flags]", "List tasks across projects")
	projects := c.projectQueryFlags("project")
	tasks := c.taskQueryFlags("")
	sort := c.Flags.String("sort", "", "Sort keys, e.g. 'priority,deadline:desc'")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		result, err := tracker.ListTasks(e.store, tracker.ListTasksParams{
			Projects: *projects,
			Tasks:    *tasks,
			Sort:     *sort,
		})
		if err != nil {
			return err
		}
		return e.emit(tasksToMap(result), func(w io.Writer) {
			printTasks(w, result)
		})
	}
	return c
}

func lsLogsCmd() *Command {
	c := newCommand("ls logs [flags]", "List logs across projects and tasks")
	projects := c.projectQueryFlags("project")
	tasks := c.taskQueryFlags("task")
	logs := &tracker.LogQuery{}
	c.Flags.StringVar(&logs.Start, "start", "", "Start filter, e.g. 'today', '7 days' or 'from 2021-11-01'")
	c.Flags.StringVar(&logs.Duration, "duration", "", "Duration filter, e.g. '>= 1h'")
	c.Flags.StringVar(&logs.Tags, "tags", "", "Logs with any of these tags")
	sort := c.Flags.String("sort", "", "Sort keys, e.g. 'start:desc'")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		result, err := tracker.ListLogs(e.store, tracker.ListLogsParams{
			Projects: *projects,
			Tasks:    *tasks,
			Logs:     *logs,
			Sort:     *sort,
		})
		if err != nil {
			return err
		}
		return e.emit(logsToMap(result), func(w io.Writer) {
			printLogs(w, result)
		})
	}
	return c
}
