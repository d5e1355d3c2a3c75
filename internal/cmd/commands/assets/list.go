package assets

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// ListCommand lists assets, or counts them when count is set.
type ListCommand struct {
	*base.Command

	count bool

	flagProps    map[string]any
	flagAttrs    map[string]any
	flagPageSize int
}

func (c *ListCommand) Synopsis() string {
	if c.count {
		return "Count assets"
	}
	return "List assets"
}

func (c *ListCommand) Help() string {
	if c.count {
		return `Usage: archivist assets count [-prop key=value]... [-attr key=value]...

  Prints the number of assets matching the filters.` + c.Flags().Help()
	}
	return `Usage: archivist assets list [-prop key=value]... [-attr key=value]...

  Prints the assets matching the filters, one JSON object per line.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	name := "assets list"
	if c.count {
		name = "assets count"
	}
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	c.CommonFlags(f)

	f.KeyValueVar(
		&c.flagProps, "prop",
		"Filter on a top-level property, e.g. confirmation_status=CONFIRMED.",
	)
	f.KeyValueVar(
		&c.flagAttrs, "attr",
		"Filter on an attribute, e.g. arc_display_type=Door.",
	)
	if !c.count {
		f.IntVar(
			&c.flagPageSize, "page-size", 0,
			"Records fetched per request. Defaults to the configured page size.",
		)
	}

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI
	ctx := context.Background()

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	if c.count {
		n, err := client.Assets().Count(ctx, c.flagProps, c.flagAttrs)
		if err != nil {
			ui.Error(fmt.Sprintf("error counting assets: %v", err))
			return 1
		}
		ui.Output(fmt.Sprint(n))
		return 0
	}

	var opts []archivist.ListOption
	if c.flagPageSize > 0 {
		opts = append(opts, archivist.WithPageSize(c.flagPageSize))
	}
	for asset, err := range client.Assets().List(c.flagProps, c.flagAttrs, opts...).All(ctx) {
		if err != nil {
			ui.Error(fmt.Sprintf("error listing assets: %v", err))
			return 1
		}
		if err := c.OutputJSONLine(asset); err != nil {
			ui.Error(fmt.Sprintf("error encoding output: %v", err))
			return 1
		}
	}
	return 0
}

// NewCount returns the count variant.
func NewCount(b *base.Command) *ListCommand {
	return &ListCommand{Command: b, count: true}
}
