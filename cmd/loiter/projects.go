package main

import (
	"fmt"
	"io"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/tracker"
)

func addProjectCmd() *Command {
	c := newCommand("add project <name> [flags]", "Create a project")
	description := c.Flags.StringP("description", "d", "", "Project description")
	deadline := c.Flags.String("deadline", "", "Deadline, e.g. 2021-12-01 or tomorrow@17:00")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 1 {
			return c.usage()
		}
		dl, err := e.timestamp(*deadline)
		if err != nil {
			return err
		}
		p, err := tracker.AddProject(e.store, tracker.AddProjectParams{
			Name:        args[0],
			Description: *description,
			Deadline:    dl,
			Tags:        model.SplitList(*tags),
		})
		if err != nil {
			return err
		}
		return e.emit(projectToMap(p), func(w io.Writer) {
			fmt.Fprintf(w, "Created project: %s\n", p.ID)
		})
	}
	return c
}

func updateProjectCmd() *Command {
	c := newCommand("update project <id> [flags]", "Rename or edit a project")
	name := c.Flags.StringP("name", "n", "", "New name (moves the project to the new slug)")
	description := c.Flags.StringP("description", "d", "", "Project description")
	deadline := c.Flags.String("deadline", "", "Deadline")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags, replacing the current ones")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 1 {
			return c.usage()
		}
		dl, err := e.timestamp(*deadline)
		if err != nil {
			return err
		}
		p, err := tracker.UpdateProject(e.store, tracker.UpdateProjectParams{
			ID:          args[0],
			Name:        changedString(c.Flags, "name", *name),
			Description: changedString(c.Flags, "description", *description),
			Deadline:    dl,
			Tags:        changedTags(c.Flags, "tags", *tags),
		})
		if err != nil {
			return err
		}
		return e.emit(projectToMap(p), func(w io.Writer) {
			fmt.Fprintf(w, "Updated project: %s\n", p.ID)
		})
	}
	return c
}

func rmProjectCmd() *Command {
	c := newCommand("rm project <id>", "Delete a project with its tasks and logs")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 1 {
			return c.usage()
		}
		id := model.Slugify(args[0])
		if err := tracker.RemoveProject(e.store, id); err != nil {
			return err
		}
		return e.emit(map[string]string{"deleted": id}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted project: %s\n", id)
		})
	}
	return c
}

func statesCmd() *Command {
	c := newCommand("states [project]", "Show the task states of a project, or the defaults")

	c.Exec = func(e *env, args []string) error {
		if len(args) > 1 {
			return c.usage()
		}
		projectID := ""
		if len(args) == 1 {
			projectID = args[0]
		}
		states, err := tracker.TaskStates(e.store, projectID)
		if err != nil {
			return err
		}
		return e.emit(statesToMap(states), func(w io.Writer) {
			printStates(w, states)
		})
	}
	return c
}
