package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/output"
)

// Exit codes
const (
	ExitOK           = 0
	ExitDomainError  = 1
	ExitUnknownError = 2
)

// Runner executes the command line and maps the outcome to an exit code:
// 0 on success, 1 on a configme error, 2 on any other error or when the
// logger cannot be set up.
type Runner struct {
	Out io.Writer
	Err io.Writer

	opts options
}

// NewRunner creates a Runner writing to stdout and stderr
func NewRunner() *Runner {
	return &Runner{Out: os.Stdout, Err: os.Stderr}
}

// Run parses args (without the program name) and generates the role
func (r *Runner) Run(args []string) int {
	cmd := newRootCmd(&r.opts)
	cmd.SetArgs(args)
	cmd.SetOut(r.Out)
	cmd.SetErr(r.Err)

	printer := output.NewPrinter(r.Err, !output.ColorEnabled(r.Err))

	if len(args) == 0 {
		printer.Error(MsgErrorLabel, MsgNoArguments)
		printer.Hint(cmd.UsageString())
		return ExitDomainError
	}

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var bootErr *bootstrapError
	if stderrors.As(err, &bootErr) {
		fmt.Fprintln(r.Err, MsgFatalLogger)
		return ExitUnknownError
	}

	if errors.IsDomainError(err) {
		printer.Error(MsgErrorLabel, err.Error())
		if errors.IsErrorCode(err, errors.ErrScriptArgument) {
			printer.Hint(cmd.UsageString())
		}
		return ExitDomainError
	}

	printer.Error(MsgUnknownErrorLabel, err.Error())
	return ExitUnknownError
}
