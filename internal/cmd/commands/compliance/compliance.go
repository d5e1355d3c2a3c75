package compliance

import (
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Check asset compliance"
}

func (c *Command) Help() string {
	return `Usage: archivist compliance <subcommand> [options] [args]

  This command groups subcommands for compliance.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
