package base

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/jitsuin-inc/archivist-go/internal/config"
	"github.com/jitsuin-inc/archivist-go/internal/version"
	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used for config, token and story files.
	Fs afero.Fs

	// Getenv looks up environment overrides.
	Getenv func(string) string

	flagConfig   string
	flagLogLevel string
}

// NewCommand returns a Command using the OS filesystem and environment.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:    log,
		UI:     ui,
		Fs:     afero.NewOsFs(),
		Getenv: os.Getenv,
	}
}

// CommonFlags registers the flags shared by every command that talks to
// Archivist.
func (c *Command) CommonFlags(f *FlagSet) {
	defaultConfig := ""
	if c.Getenv != nil {
		defaultConfig = c.Getenv(config.EnvConfigFile)
	}
	f.StringVar(
		&c.flagConfig, "config", defaultConfig,
		fmt.Sprintf("Path to the HCL config file. Defaults to $%s.", config.EnvConfigFile),
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level: trace, debug, info, warn or error.",
	)
}

// Client builds an Archivist client from the config file and environment.
func (c *Command) Client() (*archivist.Client, error) {
	if c.flagLogLevel != "" {
		level := hclog.LevelFromString(c.flagLogLevel)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("invalid log level %q", c.flagLogLevel)
		}
		c.Log.SetLevel(level)
	}

	cfg, err := config.Load(c.Fs, c.flagConfig, c.Getenv)
	if err != nil {
		return nil, err
	}

	clientCfg, err := cfg.Archivist.ClientConfig(c.Fs, c.Log)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	clientCfg.UserAgent = version.UserAgent()

	return archivist.New(clientCfg)
}

// OutputJSON writes v as indented JSON.
func (c *Command) OutputJSON(v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}
	c.UI.Output(string(b))
	return 0
}

// OutputJSONLine writes v as a single line of JSON.
func (c *Command) OutputJSONLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.UI.Output(string(b))
	return nil
}
