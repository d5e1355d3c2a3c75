package subjects

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
)

// RecordCommand reads a subject, or deletes it when del is set.
type RecordCommand struct {
	*base.Command

	del bool
}

// NewDelete returns the delete variant.
func NewDelete(b *base.Command) *RecordCommand {
	return &RecordCommand{Command: b, del: true}
}

func (c *RecordCommand) verb() string {
	if c.del {
		return "delete"
	}
	return "read"
}

func (c *RecordCommand) Synopsis() string {
	if c.del {
		return "Delete a subject"
	}
	return "Read a subject"
}

func (c *RecordCommand) Help() string {
	return fmt.Sprintf(`Usage: archivist subjects %s <identity>

  Runs %s on a subject, e.g. subjects/xxxxxxxx, and prints the response
  as JSON.`, c.verb(), c.verb()) + c.Flags().Help()
}

func (c *RecordCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("subjects "+c.verb(), flag.ContinueOnError))
	c.CommonFlags(f)
	return f
}

func (c *RecordCommand) Run(args []string) int {
	ui := c.UI
	ctx := context.Background()

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one subject identity")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	identity := flags.Arg(0)
	subjects := client.Subjects()
	if c.del {
		resp, err := subjects.Delete(ctx, identity)
		if err != nil {
			ui.Error(fmt.Sprintf("error deleting subject: %v", err))
			return 1
		}
		return c.OutputJSON(resp)
	}

	subject, err := subjects.Read(ctx, identity)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading subject: %v", err))
		return 1
	}
	return c.OutputJSON(subject)
}
