package compliance

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

type CheckCommand struct {
	*base.Command

	flagAt string
}

func (c *CheckCommand) Synopsis() string {
	return "Check the compliance of an asset"
}

func (c *CheckCommand) Help() string {
	return `Usage: archivist compliance check [-at time] <asset identity>

  Prints the compliance of an asset against every policy that applies to
  it. -at accepts most date formats, e.g. "2021-03-04 10:30" or
  "March 4, 2021"; times without a zone are UTC.` + c.Flags().Help()
}

func (c *CheckCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("compliance check", flag.ContinueOnError))
	c.CommonFlags(f)

	f.StringVar(
		&c.flagAt, "at", "",
		"Evaluate compliance at this time instead of now.",
	)

	return f
}

func (c *CheckCommand) Run(args []string) int {
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

	at, err := parseAt(c.flagAt)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing -at: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	compliance, err := client.Compliance().Read(context.Background(), flags.Arg(0), at)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading compliance: %v", err))
		return 1
	}

	return c.OutputJSON(compliance)
}

// parseAt returns the zero time for an empty string.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}
