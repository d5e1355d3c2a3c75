package assets

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type ReadCommand struct {
	*base.Command
}

func (c *ReadCommand) Synopsis() string {
	return "Read an asset"
}

func (c *ReadCommand) Help() string {
	return `Usage: archivist assets read <identity>

  Reads an asset, e.g. assets/xxxxxxxx, and prints it as JSON.` + c.Flags().Help()
}

func (c *ReadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("assets read", flag.ContinueOnError))
	c.CommonFlags(f)
	return f
}

func (c *ReadCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one asset identity")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	asset, err := client.Assets().Read(context.Background(), flags.Arg(0))
	if err != nil {
		ui.Error(fmt.Sprintf("error reading asset: %v", err))
		return 1
	}

	return c.OutputJSON(asset)
}
