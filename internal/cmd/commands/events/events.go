package events

import (
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List and count events"
}

func (c *Command) Help() string {
	return `Usage: archivist events <subcommand> [options] [args]

  This command groups subcommands for querying events.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
