package version

import (
	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	buildversion "github.com/jitsuin-inc/archivist-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the binary"
}

func (c *Command) Help() string {
	return `Usage: archivist version

  This command prints the version of the binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(buildversion.Version)
	return 0
}
