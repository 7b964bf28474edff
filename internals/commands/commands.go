package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// ExitCodeError ends the process with Code. Nothing is printed, the runner
// has reported the outcome already
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exit is replaced in tests
var (
	osExit = os.Exit
	exit   = osExit
)

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err == nil {
			return
		}
		exit(Render(err))
	}

	return build
}

// Render prints err and returns the exit code to use for it
func Render(err error) int {
	var asExitErr *ExitCodeError
	if errors.As(err, &asExitErr) {
		return asExitErr.Code
	}

	var asCliErr *CliError
	if !errors.As(err, &asCliErr) {
		asCliErr = FromKind(err)
	}
	if asCliErr != nil {
		fmt.Println(asCliErr.RichError() + "\n")
	} else {
		fmt.Println(
			ErrorBox(err.Error(), ""),
		)
	}
	return 1
}
