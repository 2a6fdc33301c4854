package maincmd

import (
	"context"
	"errors"
	"io"

	"github.com/mna/ecrin/script"
	"github.com/mna/mainer"
)

// Check implements the check command: run each script file, discarding the
// trace and printing only the failures. It returns a non-nil error if any
// script fails to parse or an expect assertion fails.
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CheckFiles(ctx, stdio, args...)
}

// CheckFiles runs the script files, printing parse errors and expect
// failures to stdio.Stderr. It is exported so that tests drive the exact
// same path as the check command.
func CheckFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	opsByFile, err := script.ParseFiles(ctx, files...)

	var errs []error
	if err != nil {
		printErrors(stdio, err)
		errs = append(errs, err)
	}
	for _, ops := range opsByFile {
		if err := script.Run(ops, io.Discard); err != nil {
			printErrors(stdio, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
