package assets

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

type CreateCommand struct {
	*base.Command

	flagBehaviours []string
	flagAttrs      map[string]any
	flagConfirm    bool
}

func (c *CreateCommand) Synopsis() string {
	return "Create an asset"
}

func (c *CreateCommand) Help() string {
	return `Usage: archivist assets create -attr key=value [-behaviour name]...

  Creates an asset and prints it as JSON. With -confirm, waits until the
  asset is confirmed on the ledger.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("assets create", flag.ContinueOnError))
	c.CommonFlags(f)

	f.StringSliceVar(
		&c.flagBehaviours, "behaviour",
		"Asset behaviour, e.g. RecordEvidence. May be repeated.",
	)
	f.KeyValueVar(
		&c.flagAttrs, "attr",
		"Asset attribute as key=value. May be repeated.",
	)
	f.BoolVar(
		&c.flagConfirm, "confirm", false,
		"Wait for the asset to be confirmed.",
	)

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if len(c.flagAttrs) == 0 {
		ui.Error("at least one -attr is required")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	var opts []archivist.CreateOption
	if c.flagConfirm {
		opts = append(opts, archivist.WithConfirmation())
	}

	asset, err := client.Assets().Create(context.Background(), c.flagBehaviours, c.flagAttrs, opts...)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating asset: %v", err))
		return 1
	}

	return c.OutputJSON(asset)
}
