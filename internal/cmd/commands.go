package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/jitsuin-inc/archivist-go/internal/cmd/base"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/assets"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/compliance"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/events"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/story"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/subjects"
	"github.com/jitsuin-inc/archivist-go/internal/cmd/commands/version"
)

// Commands returns the command factories of the archivist CLI.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	newBase := func() *base.Command {
		return base.NewCommand(log, ui)
	}

	return map[string]cli.CommandFactory{
		"assets": func() (cli.Command, error) {
			return &assets.Command{Command: newBase()}, nil
		},
		"assets create": func() (cli.Command, error) {
			return &assets.CreateCommand{Command: newBase()}, nil
		},
		"assets read": func() (cli.Command, error) {
			return &assets.ReadCommand{Command: newBase()}, nil
		},
		"assets list": func() (cli.Command, error) {
			return &assets.ListCommand{Command: newBase()}, nil
		},
		"assets count": func() (cli.Command, error) {
			return assets.NewCount(newBase()), nil
		},

		"subjects": func() (cli.Command, error) {
			return &subjects.Command{Command: newBase()}, nil
		},
		"subjects create": func() (cli.Command, error) {
			return &subjects.CreateCommand{Command: newBase()}, nil
		},
		"subjects read": func() (cli.Command, error) {
			return &subjects.RecordCommand{Command: newBase()}, nil
		},
		"subjects delete": func() (cli.Command, error) {
			return subjects.NewDelete(newBase()), nil
		},
		"subjects list": func() (cli.Command, error) {
			return &subjects.ListCommand{Command: newBase()}, nil
		},
		"subjects count": func() (cli.Command, error) {
			return subjects.NewCount(newBase()), nil
		},

		"events": func() (cli.Command, error) {
			return &events.Command{Command: newBase()}, nil
		},
		"events list": func() (cli.Command, error) {
			return &events.ListCommand{Command: newBase()}, nil
		},
		"events count": func() (cli.Command, error) {
			return events.NewCount(newBase()), nil
		},

		"compliance": func() (cli.Command, error) {
			return &compliance.Command{Command: newBase()}, nil
		},
		"compliance check": func() (cli.Command, error) {
			return &compliance.CheckCommand{Command: newBase()}, nil
		},

		"story": func() (cli.Command, error) {
			return &story.Command{Command: newBase()}, nil
		},
		"story run": func() (cli.Command, error) {
			return &story.RunCommand{Command: newBase()}, nil
		},

		"version": func() (cli.Command, error) {
			return &version.Command{Command: newBase()}, nil
		},
	}
}
