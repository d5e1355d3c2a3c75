package subjects

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// ListCommand lists subjects, or counts them when count is set.
type ListCommand struct {
	*base.Command

	count bool

	flagProps    map[string]any
	flagPageSize int
}

// NewCount returns the count variant.
func NewCount(b *base.Command) *ListCommand {
	return &ListCommand{Command: b, count: true}
}

func (c *ListCommand) Synopsis() string {
	if c.count {
		return "Count subjects"
	}
	return "List subjects"
}

func (c *ListCommand) Help() string {
	if c.count {
		return `Usage: archivist subjects count [-prop key=value]...

  Prints the number of subjects matching the filters.` + c.Flags().Help()
	}
	return `Usage: archivist subjects list [-prop key=value]...

  Prints the subjects matching the filters, one JSON object per line.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	name := "subjects list"
	if c.count {
		name = "subjects count"
	}
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	c.CommonFlags(f)

	f.KeyValueVar(
		&c.flagProps, "prop",
		"Filter on a property, e.g. display_name=Acme.",
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
		n, err := client.Subjects().Count(ctx, c.flagProps)
		if err != nil {
			ui.Error(fmt.Sprintf("error counting subjects: %v", err))
			return 1
		}
		ui.Output(fmt.Sprint(n))
		return 0
	}

	var opts []archivist.ListOption
	if c.flagPageSize > 0 {
		opts = append(opts, archivist.WithPageSize(c.flagPageSize))
	}
	for subject, err := range client.Subjects().List(c.flagProps, opts...).All(ctx) {
		if err != nil {
			ui.Error(fmt.Sprintf("error listing subjects: %v", err))
			return 1
		}
		if err := c.OutputJSONLine(subject); err != nil {
			ui.Error(fmt.Sprintf("error encoding output: %v", err))
			return 1
		}
	}
	return 0
}
