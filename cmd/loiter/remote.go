package main

import (
	"fmt"
	"io"

	gsync "github.com/stefanpenner/loiter/pkg/sync"
)

func (e *env) repo() *gsync.Repo {
	return &gsync.Repo{Dir: e.store.Root, Out: e.errOut}
}

func remoteInitCmd() *Command {
	c := newCommand("remote init [url]", "Make the data directory a git repository")

	c.Exec = func(e *env, args []string) error {
		if len(args) > 1 {
			return c.usage()
		}
		remote := ""
		if len(args) == 1 {
			remote = args[0]
		}
		if err := e.repo().Init(remote); err != nil {
			return err
		}
		return e.emit(map[string]string{"initialized": e.store.Root, "remote": remote}, func(w io.Writer) {
			fmt.Fprintf(w, "Initialized git repository in %s\n", e.store.Root)
		})
	}
	return c
}

func remotePushCmd() *Command {
	c := newCommand("remote push", "Commit local changes and push them to the remote")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		if err := e.repo().Push(); err != nil {
			return err
		}
		return e.emit(map[string]string{"pushed": e.store.Root}, func(w io.Writer) {
			fmt.Fprintln(w, "Pushed.")
		})
	}
	return c
}

func remotePullCmd() *Command {
	c := newCommand("remote pull", "Commit local changes and pull from the remote")

	c.Exec = func(e *env, args []string) error {
		if len(args) != 0 {
			return c.usage()
		}
		if err := e.repo().Pull(); err != nil {
			return err
		}
		return e.emit(map[string]string{"pulled": e.store.Root}, func(w io.Writer) {
			fmt.Fprintln(w, "Pulled.")
		})
	}
	return c
}
