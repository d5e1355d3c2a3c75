package base

import (
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(env map[string]string) (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &Command{
		Log:    hclog.NewNullLogger(),
		UI:     ui,
		Fs:     afero.NewMemMapFs(),
		Getenv: func(k string) string { return env[k] },
	}, ui
}

func TestCommand_Client(t *testing.T) {
	c, _ := newTestCommand(map[string]string{
		"ARCHIVIST_URL":        "https://rkvst.poc.jitsuin.io",
		"ARCHIVIST_AUTH_TOKEN": "token",
	})
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.CommonFlags(f)
	require.NoError(t, f.Parse([]string{"-log-level", "debug"}))

	client, err := c.Client()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCommand_ClientConfigFile(t *testing.T) {
	c, _ := newTestCommand(map[string]string{"ARCHIVIST_CONFIG": "/etc/archivist.hcl"})
	require.NoError(t, afero.WriteFile(c.Fs, "/etc/archivist.hcl", []byte(`
archivist {
  url        = "https://rkvst.poc.jitsuin.io"
  token_file = "/etc/token"
}
`), 0o600))
	require.NoError(t, afero.WriteFile(c.Fs, "/etc/token", []byte("secret\n"), 0o600))

	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.CommonFlags(f)
	require.NoError(t, f.Parse(nil))

	_, err := c.Client()
	require.NoError(t, err)
}

func TestCommand_ClientErrors(t *testing.T) {
	c, _ := newTestCommand(nil)
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.CommonFlags(f)
	require.NoError(t, f.Parse(nil))

	_, err := c.Client()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archivist.url is required")

	require.NoError(t, f.Parse([]string{"-log-level", "loud"}))
	_, err = c.Client()
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}

func TestCommand_OutputJSON(t *testing.T) {
	c, ui := newTestCommand(nil)

	assert.Equal(t, 0, c.OutputJSON(map[string]any{"identity": "assets/1"}))
	assert.Equal(t, "{\n  \"identity\": \"assets/1\"\n}\n", ui.OutputWriter.String())

	require.NoError(t, c.OutputJSONLine(map[string]any{"identity": "assets/2"}))
	assert.Contains(t, ui.OutputWriter.String(), "{\"identity\":\"assets/2\"}\n")

	assert.Equal(t, 1, c.OutputJSON(func() {}))
	assert.Contains(t, ui.ErrorWriter.String(), "error encoding output")
}
