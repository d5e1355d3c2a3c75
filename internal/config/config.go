package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

const (
	// EnvURL overrides archivist.url.
	EnvURL = "ARCHIVIST_URL"

	// EnvTokenFile overrides archivist.token_file.
	EnvTokenFile = "ARCHIVIST_TOKEN_FILE"

	// EnvAuthToken supplies the bearer token directly. It takes precedence
	// over any token file.
	EnvAuthToken = "ARCHIVIST_AUTH_TOKEN"

	// EnvConfigFile is the default config file path for the CLI.
	EnvConfigFile = "ARCHIVIST_CONFIG"
)

// Config is the configuration file of the archivist CLI.
type Config struct {
	// Archivist configures the connection to the Archivist instance.
	Archivist *Archivist `hcl:"archivist,block"`
}

// Archivist is the archivist block of a config file.
type Archivist struct {
	// URL is the base URL of the instance, e.g.
	// "https://rkvst.poc.jitsuin.io".
	URL string `hcl:"url,optional"`

	// TokenFile is a file whose trimmed contents are the bearer token.
	TokenFile string `hcl:"token_file,optional"`

	// TLSVerify disables certificate verification when false.
	TLSVerify *bool `hcl:"tls_verify,optional"`

	// CertFile and KeyFile are an optional PEM client certificate and key.
	CertFile string `hcl:"cert_file,optional"`
	KeyFile  string `hcl:"key_file,optional"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout string `hcl:"timeout,optional"`

	// ConfirmTimeout bounds confirmation waits, e.g. "20m".
	ConfirmTimeout string `hcl:"confirm_timeout,optional"`

	// PageSize is the default list page size.
	PageSize int `hcl:"page_size,optional"`

	// AuthToken is only ever set from the environment.
	AuthToken string
}

// Load reads the config file at path from fs, if path is not empty, then
// applies environment overrides looked up with getenv.
func Load(fs afero.Fs, path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		src, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := hclsimple.Decode(path, src, nil, cfg); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	}

	if cfg.Archivist == nil {
		cfg.Archivist = &Archivist{}
	}
	cfg.Archivist.applyEnv(getenv)

	return cfg, nil
}

func (a *Archivist) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv(EnvURL); v != "" {
		a.URL = v
	}
	if v := getenv(EnvTokenFile); v != "" {
		a.TokenFile = v
	}
	if v := getenv(EnvAuthToken); v != "" {
		a.AuthToken = v
	}
}

// Validate reports every problem with the block at once.
func (a *Archivist) Validate() error {
	var result *multierror.Error

	if a.URL == "" {
		result = multierror.Append(result,
			fmt.Errorf("archivist.url is required (or set %s)", EnvURL))
	}
	if a.TokenFile == "" && a.AuthToken == "" {
		result = multierror.Append(result,
			fmt.Errorf("archivist.token_file is required (or set %s or %s)", EnvTokenFile, EnvAuthToken))
	}
	if _, err := parseDuration(a.Timeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("archivist.timeout: %w", err))
	}
	if _, err := parseDuration(a.ConfirmTimeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("archivist.confirm_timeout: %w", err))
	}
	if a.PageSize < 0 {
		result = multierror.Append(result, errors.New("archivist.page_size must not be negative"))
	}

	return result.ErrorOrNil()
}

// ClientConfig validates the block, reads the token and returns the
// equivalent client configuration.
func (a *Archivist) ClientConfig(fs afero.Fs, logger hclog.Logger) (*archivist.Config, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	token := a.AuthToken
	if token == "" {
		raw, err := afero.ReadFile(fs, a.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("error reading token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
		if token == "" {
			return nil, fmt.Errorf("token file %q is empty", a.TokenFile)
		}
	}

	cfg := archivist.DefaultConfig()
	cfg.BaseURL = a.URL
	cfg.AuthToken = token
	cfg.CertFile = a.CertFile
	cfg.KeyFile = a.KeyFile
	cfg.Logger = logger
	if a.TLSVerify != nil {
		verify := *a.TLSVerify
		cfg.TLSVerify = &verify
	}
	if a.PageSize > 0 {
		cfg.PageSize = a.PageSize
	}

	// Durations were checked by Validate.
	if d, _ := parseDuration(a.Timeout); d > 0 {
		cfg.Timeout = d
	}
	if d, _ := parseDuration(a.ConfirmTimeout); d > 0 {
		cfg.ConfirmTimeout = d
	}

	return cfg, nil
}

// parseDuration parses s, treating the empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
