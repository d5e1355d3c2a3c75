package story

import (
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Run Archivist stories"
}

func (c *Command) Help() string {
	return `Usage: archivist story <subcommand> [options] [args]

  This command groups subcommands for YAML stories.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
