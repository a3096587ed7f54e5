package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/stefanpenner/loiter/pkg/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	path    string
	verbose bool
	output  string
	help    bool
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var g globalFlags
	fs := flag.NewFlagSet("loiter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.StringVarP(&g.path, "path", "p", "", "Data directory (default $"+store.RootEnv+" or ~/.loiter)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")
	fs.StringVarP(&g.output, "output", "o", "table", "Output format: table, json or yaml")
	fs.BoolVarP(&g.help, "help", "h", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return g, nil, err
	}
	return g, fs.Args(), nil
}

func run(args []string, out, errOut io.Writer) error {
	g, rest, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	cmds := commands()
	if g.help || len(rest) == 0 || rest[0] == "help" {
		printUsage(out, cmds)
		return nil
	}

	format, err := parseFormat(g.output)
	if err != nil {
		return err
	}

	cmd, cmdArgs := lookup(cmds, rest)
	if cmd == nil {
		printUsage(errOut, cmds)
		return fmt.Errorf("unknown command: %s", strings.Join(rest, " "))
	}

	if err := cmd.Flags.Parse(cmdArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cmd.PrintHelp(out)
			return nil
		}
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	s, err := openStore(g, errOut)
	if err != nil {
		return err
	}

	e := &env{store: s, out: out, errOut: errOut, format: format}
	return cmd.Exec(e, cmd.Flags.Args())
}

func openStore(g globalFlags, errOut io.Writer) (*store.Store, error) {
	root := g.path
	if root == "" {
		root = store.DefaultRoot()
	}
	s, err := store.NewStore(root)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	s.Logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	return s, nil
}
