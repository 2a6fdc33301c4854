package maincmd

import (
	"context"
	"errors"

	"github.com/mna/ecrin/script"
	"github.com/mna/mainer"
)

// Trace implements the trace command: run each script file and print the
// trace of every op to stdout.
func (c *Cmd) Trace(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TraceFiles(ctx, stdio, args...)
}

// TraceFiles runs the script files, writing one trace line per op to
// stdio.Stdout; parse errors and expect failures are printed to
// stdio.Stderr. It is exported so that tests drive the exact same path as
// the trace command.
func TraceFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	opsByFile, err := script.ParseFiles(ctx, files...)

	var errs []error
	if err != nil {
		printErrors(stdio, err)
		errs = append(errs, err)
	}
	for _, ops := range opsByFile {
		if err := script.Run(ops, stdio.Stdout); err != nil {
			printErrors(stdio, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
