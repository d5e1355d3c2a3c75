package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jitsuin-inc/archivist-go/internal/version"
)

func TestCommands(t *testing.T) {
	ui := cli.NewMockUi()
	commands := Commands(hclog.NewNullLogger(), ui)

	for _, name := range []string{
		"assets create", "assets read", "assets list", "assets count",
		"subjects create", "subjects read", "subjects list", "subjects count", "subjects delete",
		"events list", "events count",
		"compliance check",
		"story run",
		"version",
	} {
		t.Run(name, func(t *testing.T) {
			factory, ok := commands[name]
			require.True(t, ok)
			c, err := factory()
			require.NoError(t, err)
			assert.NotEmpty(t, c.Synopsis())
			assert.Contains(t, c.Help(), "Usage: archivist "+name)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	ui := cli.NewMockUi()
	c, err := Commands(hclog.NewNullLogger(), ui)["version"]()
	require.NoError(t, err)

	assert.Equal(t, 0, c.Run(nil))
	assert.Equal(t, version.Version+"\n", ui.OutputWriter.String())
}

func TestGroupCommandsShowHelp(t *testing.T) {
	commands := Commands(hclog.NewNullLogger(), cli.NewMockUi())
	for _, name := range []string{"assets", "subjects", "events", "compliance", "story"} {
		c, err := commands[name]()
		require.NoError(t, err)
		assert.Equal(t, cli.RunResultHelp, c.Run(nil), name)
	}
}
