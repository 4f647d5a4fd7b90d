package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command that renders returned errors
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wraps cmd so errors of run are rendered and exit with code 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, RenderError(err)+"\n")
			os.Exit(1)
		}
	}

	return build
}
