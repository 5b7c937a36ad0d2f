// Package action implements what os-find does with a matching entry: print
// its path or run a program on it.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	osfind "github.com/wafemand/os-find"
)

// Printer writes each matching path on its own line.
//
// Printer is safe for concurrent use; lines are never interleaved.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Consume implements [osfind.Consumer]. A write error (for example a closed
// pipe) is returned so the walk stops.
func (p *Printer) Consume(e osfind.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := io.WriteString(p.w, e.Path()+"\n")
	if err != nil {
		return fmt.Errorf("write %s: %w", e.Path(), err)
	}

	return nil
}

// Executor runs a program once per matching entry with the entry's path as
// its only argument and waits for it to exit.
//
// The program path is used verbatim; PATH is not searched. The child
// inherits the environment, stdout and stderr. A program that cannot be
// started or exits non-zero is logged and the walk continues.
type Executor struct {
	program string
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	log     zerolog.Logger
	ctx     context.Context
}

// NewExecutor returns an Executor for program. Children are killed if ctx is
// cancelled.
func NewExecutor(ctx context.Context, program string, stdout, stderr io.Writer, log zerolog.Logger) *Executor {
	return &Executor{
		program: program,
		stdout:  stdout,
		stderr:  stderr,
		env:     os.Environ(),
		log:     log,
		ctx:     ctx,
	}
}

// Consume implements [osfind.Consumer]. It only fails when ctx is done.
func (x *Executor) Consume(e osfind.Entry) error {
	if err := x.ctx.Err(); err != nil {
		return context.Cause(x.ctx)
	}

	cmd := exec.CommandContext(x.ctx, x.program, e.Path())
	// Run the program exactly as named, like execve(2).
	cmd.Path = x.program
	cmd.Err = nil
	cmd.Env = x.env
	cmd.Stdout = x.stdout
	cmd.Stderr = x.stderr

	err := cmd.Run()

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		x.log.Debug().Str("program", x.program).Str("path", e.Path()).Msg("program finished")
	case errors.As(err, &exitErr):
		x.log.Warn().Str("program", x.program).Str("path", e.Path()).
			Int("status", exitErr.ExitCode()).Msg("program exited with failure")
	default:
		x.log.Error().Err(err).Str("program", x.program).Str("path", e.Path()).
			Msg("cannot execute program")
	}

	return nil
}
