package events

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// ListCommand lists events, or counts them when count is set.
type ListCommand struct {
	*base.Command

	count bool

	flagAsset      string
	flagProps      map[string]any
	flagAttrs      map[string]any
	flagAssetAttrs map[string]any
	flagPageSize   int
}

// NewCount returns the count variant.
func NewCount(b *base.Command) *ListCommand {
	return &ListCommand{Command: b, count: true}
}

func (c *ListCommand) Synopsis() string {
	if c.count {
		return "Count events"
	}
	return "List events"
}

func (c *ListCommand) Help() string {
	verb := "list"
	if c.count {
		verb = "count"
	}
	return fmt.Sprintf(`Usage: archivist events %s [-asset identity] [options]

  Queries the events of one asset, or of every asset when -asset is
  omitted.`, verb) + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	name := "events list"
	if c.count {
		name = "events count"
	}
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	c.CommonFlags(f)

	f.StringVar(
		&c.flagAsset, "asset", "",
		"Asset identity, e.g. assets/xxxxxxxx.",
	)
	f.KeyValueVar(
		&c.flagProps, "prop",
		"Filter on a top-level property, e.g. operation=Record.",
	)
	f.KeyValueVar(
		&c.flagAttrs, "attr",
		"Filter on an event attribute.",
	)
	f.KeyValueVar(
		&c.flagAssetAttrs, "asset-attr",
		"Filter on an asset attribute recorded with the event.",
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

	q := archivist.EventsQuery{
		AssetIdentity:   c.flagAsset,
		Props:           c.flagProps,
		Attrs:           c.flagAttrs,
		AssetAttributes: c.flagAssetAttrs,
	}

	if c.count {
		n, err := client.Events().Count(ctx, q)
		if err != nil {
			ui.Error(fmt.Sprintf("error counting events: %v", err))
			return 1
		}
		ui.Output(fmt.Sprint(n))
		return 0
	}

	var opts []archivist.ListOption
	if c.flagPageSize > 0 {
		opts = append(opts, archivist.WithPageSize(c.flagPageSize))
	}
	for event, err := range client.Events().List(q, opts...).All(ctx) {
		if err != nil {
			ui.Error(fmt.Sprintf("error listing events: %v", err))
			return 1
		}
		if err := c.OutputJSONLine(event); err != nil {
			ui.Error(fmt.Sprintf("error encoding output: %v", err))
			return 1
		}
	}
	return 0
}
