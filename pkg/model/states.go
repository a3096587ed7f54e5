package model

import (
	"fmt"
	"slices"
	"strings"
)

// MinTaskStates is the smallest number of states a TaskStateConfig may hold.
const MinTaskStates = 3

const (
	DefaultInitialState    = "inbox"
	DefaultInProgressState = "doing"
	DefaultDoneState       = "done"
)

// TaskStateConfig is the set of states tasks may be in, plus the states
// used when a task is created, worked on and finished.
type TaskStateConfig struct {
	States     []string `json:"states"`
	Initial    string   `json:"initial"`
	InProgress string   `json:"in_progress"`
	Done       string   `json:"done"`
}

// DefaultTaskStateConfig returns inbox, todo, blocked, doing, done.
func DefaultTaskStateConfig() TaskStateConfig {
	return TaskStateConfig{
		States:     []string{DefaultInitialState, "todo", "blocked", DefaultInProgressState, DefaultDoneState},
		Initial:    DefaultInitialState,
		InProgress: DefaultInProgressState,
		Done:       DefaultDoneState,
	}
}

// NewTaskStateConfig builds and validates a TaskStateConfig.
func NewTaskStateConfig(states []string, initial, inProgress, done string) (TaskStateConfig, error) {
	c := TaskStateConfig{States: states, Initial: initial, InProgress: inProgress, Done: done}
	if err := c.Validate(); err != nil {
		return TaskStateConfig{}, err
	}
	return c, nil
}

// Validate checks that there are enough unique states and that the
// initial, in-progress and done states are among them.
func (c TaskStateConfig) Validate() error {
	if len(c.States) < MinTaskStates {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewStates, len(c.States), MinTaskStates)
	}
	seen := make(map[string]bool, len(c.States))
	for _, s := range c.States {
		if seen[s] {
			return fmt.Errorf("%w: %q appears more than once", ErrDuplicateStates, s)
		}
		seen[s] = true
	}
	for _, s := range []string{c.Initial, c.InProgress, c.Done} {
		if !seen[s] {
			return c.invalid(s)
		}
	}
	return nil
}

// Contains reports whether state is one of the configured states.
func (c TaskStateConfig) Contains(state string) bool {
	return slices.Contains(c.States, state)
}

// ValidateOrInitial returns state if it is valid, or the initial state when
// state is empty.
func (c TaskStateConfig) ValidateOrInitial(state string) (string, error) {
	if state == "" {
		return c.Initial, nil
	}
	if !c.Contains(state) {
		return "", c.invalid(state)
	}
	return state, nil
}

func (c TaskStateConfig) invalid(state string) error {
	return fmt.Errorf("%w: %q (valid states: %s)", ErrInvalidState, state, strings.Join(c.States, ", "))
}

// Config is the store-wide configuration document.
type Config struct {
	TaskStateConfig TaskStateConfig `json:"task_state_config"`
}

// DefaultConfig returns a Config with the default task states.
func DefaultConfig() *Config {
	return &Config{TaskStateConfig: DefaultTaskStateConfig()}
}
