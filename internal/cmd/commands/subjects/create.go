package subjects

import (
	"context"
	"flag"
	"fmt"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

type CreateCommand struct {
	*base.Command

	flagDisplayName    string
	flagWalletPubKeys  []string
	flagTesseraPubKeys []string
	flagConfirm        bool
}

func (c *CreateCommand) Synopsis() string {
	return "Create a subject"
}

func (c *CreateCommand) Help() string {
	return `Usage: archivist subjects create -display-name name [options]

  Creates a subject and prints it as JSON.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("subjects create", flag.ContinueOnError))
	c.CommonFlags(f)

	f.StringVar(
		&c.flagDisplayName, "display-name", "",
		"(Required) Display name of the subject.",
	)
	f.StringSliceVar(
		&c.flagWalletPubKeys, "wallet-pub-key",
		"Wallet public key. May be repeated.",
	)
	f.StringSliceVar(
		&c.flagTesseraPubKeys, "tessera-pub-key",
		"Tessera public key. May be repeated.",
	)
	f.BoolVar(
		&c.flagConfirm, "confirm", false,
		"Wait for the subject to be confirmed.",
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
	if c.flagDisplayName == "" {
		ui.Error("display-name flag is required")
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

	subject, err := client.Subjects().Create(context.Background(),
		c.flagDisplayName, c.flagWalletPubKeys, c.flagTesseraPubKeys, opts...)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating subject: %v", err))
		return 1
	}

	return c.OutputJSON(subject)
}
