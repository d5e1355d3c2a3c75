package story

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	stories "github.com/jitsuin-inc/archivist-go/internal/story"
)

type RunCommand struct {
	*base.Command
}

func (c *RunCommand) Synopsis() string {
	return "Run a story file"
}

func (c *RunCommand) Help() string {
	return `Usage: archivist story run <file>

  Runs the operations of a YAML story serially and prints the story as it
  goes. Compliance policies created by the story are deleted at the end.` +
		c.Flags().Help()
}

func (c *RunCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("story run", flag.ContinueOnError))
	c.CommonFlags(f)
	return f
}

func (c *RunCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one story file")
		return 1
	}

	s, err := stories.Load(c.Fs, flags.Arg(0))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := stories.NewRunner(stories.NewBackend(client), stories.Options{
		Out:    uiWriter{ui},
		Logger: c.Log,
	})
	if err := runner.Run(ctx, s); err != nil {
		ui.Error(fmt.Sprintf("error running story: %v", err))
		return 1
	}

	return 0
}

// uiWriter adapts a cli.Ui to the runner's io.Writer.
type uiWriter struct {
	ui interface{ Output(string) }
}

func (w uiWriter) Write(p []byte) (int, error) {
	s := string(p)
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	w.ui.Output(s)
	return len(p), nil
}
