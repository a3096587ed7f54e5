package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/stefanpenner/loiter/pkg/store"
)

var errUsage = errors.New("invalid arguments")

// env is what every command runs against.
type env struct {
	store  *store.Store
	out    io.Writer
	errOut io.Writer
	format outputFormat
}

// Command is a subcommand with its own flags. Commands that act on a kind
// of object are two words, e.g. "add task".
type Command struct {
	Flags *flag.FlagSet

	// Usage starts with the command name, followed by arguments and flags.
	Usage string
	Short string

	Exec func(e *env, args []string) error
}

func newCommand(usage, short string) *Command {
	c := &Command{Usage: usage, Short: short}
	c.Flags = flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.Flags.SetOutput(io.Discard)
	return c
}

// Name returns the words of Usage before the first argument placeholder.
func (c *Command) Name() string {
	var words []string
	for _, w := range strings.Fields(c.Usage) {
		if strings.HasPrefix(w, "<") || strings.HasPrefix(w, "[") {
			break
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-40s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "loiter <cmd> --help".
func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: loiter", c.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Short)

	if c.Flags.HasFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		c.Flags.SetOutput(io.Discard)
		fmt.Fprint(w, buf.String())
	}
}

// usage wraps errUsage with the command's usage line.
func (c *Command) usage() error {
	return fmt.Errorf("%w\nUsage: loiter %s", errUsage, c.Usage)
}

// lookup finds the command named by the leading words of args.
func lookup(cmds []*Command, args []string) (*Command, []string) {
	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		for _, c := range cmds {
			if c.Name() == name {
				return c, args[2:]
			}
		}
	}
	for _, c := range cmds {
		if c.Name() == args[0] {
			return c, args[1:]
		}
	}
	return nil, nil
}

func commands() []*Command {
	return []*Command{
		addProjectCmd(),
		addTaskCmd(),
		addLogCmd(),
		updateProjectCmd(),
		updateTaskCmd(),
		rmProjectCmd(),
		rmTaskCmd(),
		rmLogCmd(),
		doneCmd(),
		startCmd(),
		stopCmd(),
		cancelCmd(),
		statusCmd(),
		statesCmd(),
		lsProjectsCmd(),
		lsTasksCmd(),
		lsLogsCmd(),
		remoteInitCmd(),
		remotePushCmd(),
		remotePullCmd(),
	}
}

func printUsage(w io.Writer, cmds []*Command) {
	fmt.Fprintln(w, "Usage: loiter [-p path] [-v] [-o table|json|yaml] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range cmds {
		fmt.Fprintln(w, c.HelpLine())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'loiter <command> --help' for command flags.")
}
