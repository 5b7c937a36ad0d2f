// Package cli implements the os-find command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	osfind "github.com/wafemand/os-find"
	"github.com/wafemand/os-find/internal/action"
	"github.com/wafemand/os-find/internal/config"
	"github.com/wafemand/os-find/internal/logging"
	"github.com/wafemand/os-find/internal/query"
)

// Exit codes. Without --strict the command always exits with ExitOK.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks errors caused by invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

type findFlags struct {
	inum       uint64
	name       string
	sizes      []string
	nlinks     uint64
	exec       string
	configPath string
	verbose    int
	backend    string
	bufferSize int
	strict     bool
}

// runner holds the state of one invocation.
type runner struct {
	flags  findFlags
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
	strict bool
	failed int

	// consume replaces the printer/executor when set.
	consume osfind.Consumer
}

func newRootCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "os-find <root> [-inum N] [-name NAME] [-size [=|-|+]N]... [-nlinks N] [-exec PROGRAM]",
		Short: "Search a directory tree for files and directories",
		Long: `os-find walks every regular file and directory below <root> and prints
the path of each entry matching all given filters, or runs PROGRAM with
the path as its only argument.

Filters:
  -inum N        inode number equals N
  -name NAME     last path component equals NAME
  -size [=|-|+]N size in bytes is exactly / at most / at least N
                 (repeatable; bounds accumulate, a bare N is exact)
  -nlinks N      hard-link count equals N

Symlinks are never followed. <root> itself is never reported.

Exit Codes (with --strict; otherwise always 0):
  0  - Success
  1  - Fatal error, or at least one directory could not be read
  2  - CLI usage error`,
		Args:          requireRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.run,
	}

	f := cmd.Flags()
	f.Uint64Var(&r.flags.inum, "inum", 0, "match inode number")
	f.StringVar(&r.flags.name, "name", "", "match the last path component exactly")
	f.StringArrayVar(&r.flags.sizes, "size", nil, "match size in bytes: =N, -N (at most), +N (at least)")
	f.Uint64Var(&r.flags.nlinks, "nlinks", 0, "match hard-link count")
	f.StringVar(&r.flags.exec, "exec", "", "run PROGRAM with each matching path instead of printing it")
	f.StringVar(&r.flags.configPath, "config", "", "path to a YAML or JSON config file")
	f.CountVarP(&r.flags.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	f.StringVar(&r.flags.backend, "backend", "", "directory enumeration backend: native or portable")
	f.IntVar(&r.flags.bufferSize, "buffer-size", 0, "directory-entry staging buffer size in bytes")
	f.BoolVar(&r.flags.strict, "strict", false, "report failures through the exit status")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

// requireRoot validates that exactly one root argument is provided.
func requireRoot(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return usagef(`missing required argument: <root>

Example:
  %s /var/log -name syslog`, cmd.CommandPath())
	}

	if len(args) > 1 {
		return usagef("accepts 1 arg(s), received %d", len(args))
	}

	return nil
}

// Run executes os-find with args (without the program name) and returns the
// process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newRunner(stdout, stderr).execute(ctx, args)
}

func newRunner(stdout, stderr io.Writer) *runner {
	return &runner{
		stdout: stdout,
		stderr: stderr,
		log:    logging.New(stderr, config.DefaultVerbose),
	}
}

// execute runs the command. A panic is logged like any other fatal error
// and mapped through the same exit status rules.
func (r *runner) execute(ctx context.Context, args []string) (code int) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			r.log.Error().Err(err).Str("stack", string(debug.Stack())).Msg("os-find failed")
			code = r.exitCode(err)
		}
	}()

	cmd := newRootCommand(r)
	cmd.SetArgs(legacyArgs(args))
	cmd.SetOut(r.stdout)
	cmd.SetErr(r.stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("os-find failed")

		var uErr *usageError
		if errors.As(err, &uErr) {
			_, _ = io.WriteString(r.stderr, cmd.UsageString())
		}
	}

	return r.exitCode(err)
}

func (r *runner) exitCode(err error) int {
	if !r.strict && !r.flags.strict {
		return ExitOK
	}

	var uErr *usageError

	switch {
	case errors.As(err, &uErr):
		return ExitUsage
	case err != nil, r.failed > 0:
		return ExitFailure
	default:
		return ExitOK
	}
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	r.strict = cfg.Strict
	r.log = logging.New(r.stderr, cfg.Verbose)

	opts, err := cfg.WalkOptions()
	if err != nil {
		return &usageError{err: err}
	}

	q, err := r.buildQuery(cmd)
	if err != nil {
		return err
	}

	root, err := osfind.NewEntry(args[0])
	if err != nil {
		return fmt.Errorf("cannot use root: %w", err)
	}

	ctx := cmd.Context()

	consume := osfind.Consumer(action.NewPrinter(r.stdout).Consume)
	if r.flags.exec != "" {
		consume = action.NewExecutor(ctx, r.flags.exec, r.stdout, r.stderr, logging.Component(r.log, "exec")).Consume
	}

	if r.consume != nil {
		consume = r.consume
	}

	opts = append(opts,
		osfind.WithLogger(logging.Component(r.log, "walker")),
		osfind.WithOnError(func(error) { r.failed++ }),
	)

	r.log.Debug().Str("root", root.Path()).Str("backend", cfg.Backend).Int("buffer_size", cfg.BufferSize).Msg("walk starting")

	err = osfind.NewWalker(opts...).Walk(ctx, root, q.Predicate(), consume)

	r.log.Debug().Int("failed_dirs", r.failed).Msg("walk finished")

	return err
}

// loadConfig layers defaults, the optional config file and explicitly set
// flags, in that order.
func (r *runner) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()

	if r.flags.configPath != "" {
		var err error

		cfg, err = config.NewConfigFromFile(r.flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	var override config.ConfigOverride

	f := cmd.Flags()
	if f.Changed("verbose") {
		v := cfg.Verbose + r.flags.verbose
		override.Verbose = &v
	}

	if f.Changed("backend") {
		override.Backend = &r.flags.backend
	}

	if f.Changed("buffer-size") {
		override.BufferSize = &r.flags.bufferSize
	}

	if f.Changed("strict") {
		override.Strict = &r.flags.strict
	}

	cfg.Merge(&override)

	err := cfg.Validate()
	if err != nil {
		return nil, &usageError{err: err}
	}

	return cfg, nil
}

func (r *runner) buildQuery(cmd *cobra.Command) (*query.Query, error) {
	q := query.New()

	f := cmd.Flags()
	if f.Changed("inum") {
		q.Inode = &r.flags.inum
	}

	if f.Changed("name") {
		q.Name = &r.flags.name
	}

	if f.Changed("nlinks") {
		q.Nlink = &r.flags.nlinks
	}

	for _, s := range r.flags.sizes {
		err := q.AddSize(s)
		if err != nil {
			return nil, usagef("-size: %w", err)
		}
	}

	return q, nil
}
