package subjects

import (
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage subjects"
}

func (c *Command) Help() string {
	return `Usage: archivist subjects <subcommand> [options] [args]

  This command groups subcommands for working with subjects, the
  organizations a sharing policy can grant access to.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
