package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/institutions-in-your-pocket/overview/internal/ui"
)

// Options wire the process streams. Nil fields fall back to os.Std*.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes the command line and returns an exit code (0 ok, 1 error,
// 2 usage).
func Run(args []string, opt Options) int {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	ui.SetOutput(opt.Out, opt.Err)

	root, a := newRoot()
	root.SetArgs(args)
	root.SetIn(opt.In)
	root.SetOut(opt.Out)
	root.SetErr(opt.Err)

	err := root.ExecuteContext(context.Background())
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return 0
	}

	ui.Fail(err.Error())
	code := exitCode(err)
	if code == 2 {
		fmt.Fprintln(opt.Err)
		fmt.Fprintf(opt.Err, "Run '%s --help' for usage.\n", root.Name())
	}
	return code
}

// usageError marks bad input on the command line.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err: err}
}

func usagef(format string, a ...any) error {
	return usageError{err: fmt.Errorf(format, a...)}
}

// withUsage tags positional-argument errors as usage errors.
func withUsage(p cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(p(cmd, args))
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}
