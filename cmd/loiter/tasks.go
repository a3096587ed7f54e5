package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/tracker"
)

func addTaskCmd() *Command {
	c := newCommand("add task <project> <description> [flags]", "Create a task in a project")
	priority := c.Flags.IntP("priority", "p", 0, "Priority from 1 (highest) to 10")
	state := c.Flags.StringP("state", "s", "", "Initial state (default: the project's initial state)")
	deadline := c.Flags.String("deadline", "", "Deadline")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 2 {
			return c.usage()
		}
		dl, err := e.timestamp(*deadline)
		if err != nil {
			return err
		}
		t, err := tracker.AddTask(e.store, tracker.AddTaskParams{
			ProjectID:   args[0],
			Description: args[1],
			State:       *state,
			Priority:    *priority,
			Deadline:    dl,
			Tags:        model.SplitList(*tags),
		})
		if err != nil {
			return err
		}
		return e.emit(taskToMap(t), func(w io.Writer) {
			fmt.Fprintf(w, "Created task: %s/%d\n", t.ProjectID, t.ID)
		})
	}
	return c
}

func updateTaskCmd() *Command {
	c := newCommand("update task <project> <ids> [flags]", "Edit one or more tasks (ids are comma-separated)")
	description := c.Flags.StringP("description", "d", "", "Task description")
	priority := c.Flags.IntP("priority", "p", 0, "Priority from 1 (highest) to 10")
	state := c.Flags.StringP("state", "s", "", "State")
	deadline := c.Flags.String("deadline", "", "Deadline")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags, replacing the current ones")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 2 {
			return c.usage()
		}
		ids, err := model.ParseTaskIDs(args[1])
		if err != nil {
			return err
		}
		dl, err := e.timestamp(*deadline)
		if err != nil {
			return err
		}
		params := tracker.UpdateTasksParams{
			ProjectID:   args[0],
			TaskIDs:     ids,
			Description: changedString(c.Flags, "description", *description),
			State:       changedString(c.Flags, "state", *state),
			Deadline:    dl,
			Tags:        changedTags(c.Flags, "tags", *tags),
		}
		if c.Flags.Changed("priority") {
			params.Priority = priority
		}
		tasks, err := tracker.UpdateTasks(e.store, params)
		if err != nil {
			return err
		}
		return e.emit(tasksToMap(tasks), func(w io.Writer) {
			for _, t := range tasks {
				fmt.Fprintf(w, "Updated task: %s/%d\n", t.ProjectID, t.ID)
			}
		})
	}
	return c
}

func doneCmd() *Command {
	c := newCommand("done <project> <ids>", "Move tasks to the project's done state")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 2 {
			return c.usage()
		}
		ids, err := model.ParseTaskIDs(args[1])
		if err != nil {
			return err
		}
		tasks, err := tracker.DoneTasks(e.store, args[0], ids)
		if err != nil {
			return err
		}
		return e.emit(tasksToMap(tasks), func(w io.Writer) {
			for _, t := range tasks {
				fmt.Fprintf(w, "%s/%d → %s\n", t.ProjectID, t.ID, t.State)
			}
		})
	}
	return c
}

func rmTaskCmd() *Command {
	c := newCommand("rm task <project> <id>", "Delete a task with its logs")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 2 {
			return c.usage()
		}
		id, err := model.ParseTaskID(args[1])
		if err != nil {
			return err
		}
		projectID := model.Slugify(args[0])
		if err := tracker.RemoveTask(e.store, projectID, id); err != nil {
			return err
		}
		ref := projectID + "/" + strconv.FormatUint(uint64(id), 10)
		return e.emit(map[string]string{"deleted": ref}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted task: %s\n", ref)
		})
	}
	return c
}
