package main

import (
	"fmt"
	"io"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/tracker"
	"github.com/stefanpenner/loiter/pkg/tui"
)

func addLogCmd() *Command {
	c := newCommand("add log <project> [flags]", "Record time already spent")
	task := c.Flags.String("task", "", "Task id")
	start := c.Flags.StringP("start", "s", "", "Start time (required)")
	stop := c.Flags.String("stop", "", "Stop time")
	dur := c.Flags.StringP("duration", "d", "", "Duration, e.g. 1h30m")
	comment := c.Flags.StringP("comment", "c", "", "Comment")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 1 {
			return c.usage()
		}
		taskID, err := taskIDFlag(*task)
		if err != nil {
			return err
		}
		startAt, err := e.timestamp(*start)
		if err != nil {
			return err
		}
		stopAt, err := e.timestamp(*stop)
		if err != nil {
			return err
		}
		d, err := duration(*dur)
		if err != nil {
			return err
		}
		l, err := tracker.AddLog(e.store, tracker.AddLogParams{
			ProjectID: args[0],
			TaskID:    taskID,
			Start:     startAt,
			Stop:      stopAt,
			Duration:  d,
			Comment:   *comment,
			Tags:      model.SplitList(*tags),
		})
		if err != nil {
			return err
		}
		return e.emit(logToMap(l), func(w io.Writer) {
			fmt.Fprintf(w, "Added log: %s (%s)\n", model.RefOf(l), formatDuration(l.Duration))
		})
	}
	return c
}

func rmLogCmd() *Command {
	c := newCommand("rm log <project> <id> [flags]", "Delete a log")
	task := c.Flags.String("task", "", "Task id, for logs attached to a task")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 2 {
			return c.usage()
		}
		taskID, err := taskIDFlag(*task)
		if err != nil {
			return err
		}
		id, err := model.ParseLogID(args[1])
		if err != nil {
			return err
		}
		ref := model.LogRef{ProjectID: model.Slugify(args[0]), TaskID: taskID, LogID: id}
		if err := tracker.RemoveLog(e.store, ref.ProjectID, ref.TaskID, ref.LogID); err != nil {
			return err
		}
		return e.emit(map[string]string{"deleted": ref.String()}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted log: %s\n", ref)
		})
	}
	return c
}

func startCmd() *Command {
	c := newCommand("start <project> [flags]", "Start tracking time, stopping the active log")
	task := c.Flags.String("task", "", "Task id")
	start := c.Flags.StringP("start", "s", "", "Start time (default: now)")
	comment := c.Flags.StringP("comment", "c", "", "Comment")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 1 {
			return c.usage()
		}
		taskID, err := taskIDFlag(*task)
		if err != nil {
			return err
		}
		startAt, err := e.timestamp(*start)
		if err != nil {
			return err
		}
		l, err := tracker.StartLog(e.store, tracker.StartLogParams{
			ProjectID: args[0],
			TaskID:    taskID,
			Start:     startAt,
			Comment:   *comment,
			Tags:      model.SplitList(*tags),
		})
		if err != nil {
			return err
		}
		return e.emit(logToMap(l), func(w io.Writer) {
			fmt.Fprintf(w, "Started: %s at %s\n", model.RefOf(l), formatTime(l.Start))
		})
	}
	return c
}

func stopCmd() *Command {
	c := newCommand("stop [flags]", "Stop the active log")
	stop := c.Flags.String("stop", "", "Stop time (default: now)")
	dur := c.Flags.StringP("duration", "d", "", "Duration instead of a stop time")
	comment := c.Flags.StringP("comment", "c", "", "Comment, replacing the current one")
	tags := c.Flags.StringP("tags", "t", "", "Comma-separated tags, replacing the current ones")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		stopAt, err := e.timestamp(*stop)
		if err != nil {
			return err
		}
		d, err := duration(*dur)
		if err != nil {
			return err
		}
		l, err := tracker.StopLog(e.store, tracker.StopLogParams{
			Stop:     stopAt,
			Duration: d,
			Comment:  changedString(c.Flags, "comment", *comment),
			Tags:     changedTags(c.Flags, "tags", *tags),
		})
		if err != nil {
			return err
		}
		return e.emit(logToMap(l), func(w io.Writer) {
			fmt.Fprintf(w, "Stopped: %s after %s\n", model.RefOf(l), formatDuration(l.Duration))
		})
	}
	return c
}

func cancelCmd() *Command {
	c := newCommand("cancel", "Discard the active log")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		l, err := tracker.CancelLog(e.store)
		if err != nil {
			return err
		}
		if l == nil {
			return e.emit(map[string]any{"cancelled": nil}, func(w io.Writer) {
				fmt.Fprintln(w, "Not tracking.")
			})
		}
		return e.emit(map[string]any{"cancelled": logToMap(l)}, func(w io.Writer) {
			fmt.Fprintf(w, "Cancelled: %s\n", model.RefOf(l))
		})
	}
	return c
}

func statusCmd() *Command {
	c := newCommand("status [flags]", "Show the active log")
	follow := c.Flags.BoolP("follow", "f", false, "Keep a live view open, updating as the data changes")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		if *follow {
			return tui.Run(e.store)
		}
		st, err := tracker.Status(e.store)
		if err != nil {
			return err
		}
		return e.emit(statusToMap(st), func(w io.Writer) {
			printStatus(w, st)
		})
	}
	return c
}
