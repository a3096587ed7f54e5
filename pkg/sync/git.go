// Package sync keeps a store root in a git repository and exchanges it
// with a remote.
package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

var (
	ErrNotRepo     = errors.New("not a git repository")
	ErrAlreadyRepo = errors.New("already a git repository")
	ErrNoUpstream  = errors.New("no upstream branch")
)

// Repo is a store root under git. Git's own output goes to Out.
type Repo struct {
	Dir string
	Out io.Writer
}

func (r *Repo) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Repo) git(args ...string) *exec.Cmd {
	cmd := exec.Command("git", append([]string{"-C", r.Dir}, args...)...)
	cmd.Stdout = r.out()
	cmd.Stderr = r.out()
	return cmd
}

// quiet runs git discarding its output, for commands used as predicates.
func (r *Repo) quiet(args ...string) error {
	return exec.Command("git", append([]string{"-C", r.Dir}, args...)...).Run()
}

func (r *Repo) isRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

func (r *Repo) requireRepo() error {
	if !r.isRepo() {
		return fmt.Errorf("%w: %s (run 'loiter remote init' first)", ErrNotRepo, r.Dir)
	}
	return nil
}

// Init turns the store root into a git repository, optionally pointing
// origin at remote, and commits the current contents.
func (r *Repo) Init(remote string) error {
	if r.isRepo() {
		return fmt.Errorf("%w: %s", ErrAlreadyRepo, r.Dir)
	}
	if err := r.git("init").Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	if remote != "" {
		if err := r.git("remote", "add", "origin", remote).Run(); err != nil {
			return fmt.Errorf("setting remote: %w", err)
		}
		fmt.Fprintf(r.out(), "Remote set to: %s\n", remote)
	}
	return r.commitAll("loiter init")
}

// commitAll stages everything and commits if anything changed.
func (r *Repo) commitAll(msg string) error {
	if err := r.git("add", "-A").Run(); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}
	if r.quiet("diff", "--cached", "--quiet") == nil {
		return nil
	}
	if err := r.git("commit", "-m", msg).Run(); err != nil {
		return fmt.Errorf("committing changes: %w", err)
	}
	return nil
}

func (r *Repo) hasUpstream() bool {
	return r.quiet("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}") == nil
}

// integrate pulls from upstream, rebasing local commits and falling back
// to a merge when the rebase fails.
func (r *Repo) integrate() error {
	fmt.Fprintln(r.out(), "Pulling...")
	if err := r.git("pull", "--rebase").Run(); err == nil {
		return nil
	}
	fmt.Fprintln(r.out(), "Rebase failed, trying merge...")
	r.quiet("rebase", "--abort")
	if err := r.git("pull", "--no-rebase").Run(); err != nil {
		r.quiet("merge", "--abort")
		return errors.New("sync failed: could not rebase or merge, resolve conflicts manually")
	}
	return nil
}

func syncMessage() string {
	return "sync " + time.Now().Format("2006-01-02 15:04:05")
}

// Push commits local changes, integrates remote ones and pushes. The first
// push sets the upstream branch.
func (r *Repo) Push() error {
	if err := r.requireRepo(); err != nil {
		return err
	}
	if err := r.commitAll(syncMessage()); err != nil {
		return err
	}
	if !r.hasUpstream() {
		fmt.Fprintln(r.out(), "Pushing...")
		if err := r.git("push", "-u", "origin", "HEAD").Run(); err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		return nil
	}
	if err := r.integrate(); err != nil {
		return err
	}
	fmt.Fprintln(r.out(), "Pushing...")
	if err := r.git("push").Run(); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

// Pull commits local changes and integrates remote ones.
func (r *Repo) Pull() error {
	if err := r.requireRepo(); err != nil {
		return err
	}
	if err := r.commitAll(syncMessage()); err != nil {
		return err
	}
	if !r.hasUpstream() {
		return fmt.Errorf("%w: push once with 'loiter remote push' first", ErrNoUpstream)
	}
	return r.integrate()
}
