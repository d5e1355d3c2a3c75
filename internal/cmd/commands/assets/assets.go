package assets

import (
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Create, read and list assets"
}

func (c *Command) Help() string {
	return `Usage: archivist assets <subcommand> [options] [args]

  This command groups subcommands for working with assets.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
