package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
archivist {
  url             = "https://rkvst.poc.jitsuin.io"
  token_file      = "/home/user/.auth_token"
  tls_verify      = false
  timeout         = "10s"
  confirm_timeout = "5m"
  page_size       = 100
}
`

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/archivist.hcl", []byte(testConfig), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/home/user/.auth_token", []byte("  secret-token\n"), 0o600))

	cfg, err := Load(fs, "/etc/archivist.hcl", env(nil))
	require.NoError(t, err)
	require.NotNil(t, cfg.Archivist)
	assert.Equal(t, "https://rkvst.poc.jitsuin.io", cfg.Archivist.URL)
	require.NotNil(t, cfg.Archivist.TLSVerify)
	assert.False(t, *cfg.Archivist.TLSVerify)

	clientCfg, err := cfg.Archivist.ClientConfig(fs, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://rkvst.poc.jitsuin.io", clientCfg.BaseURL)
	assert.Equal(t, "secret-token", clientCfg.AuthToken, "token is trimmed")
	assert.False(t, *clientCfg.TLSVerify)
	assert.Equal(t, 10*time.Second, clientCfg.Timeout)
	assert.Equal(t, 5*time.Minute, clientCfg.ConfirmTimeout)
	assert.Equal(t, 100, clientCfg.PageSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "archivist.hcl", []byte(testConfig), 0o600))

	cfg, err := Load(fs, "archivist.hcl", env(map[string]string{
		EnvURL:       "https://other.example",
		EnvTokenFile: "/tmp/token",
		EnvAuthToken: "from-env",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://other.example", cfg.Archivist.URL)
	assert.Equal(t, "/tmp/token", cfg.Archivist.TokenFile)

	clientCfg, err := cfg.Archivist.ClientConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", clientCfg.AuthToken, "env token wins over the token file")
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "", env(map[string]string{
		EnvURL:       "https://rkvst.poc.jitsuin.io",
		EnvAuthToken: "tok",
	}))
	require.NoError(t, err)

	clientCfg, err := cfg.Archivist.ClientConfig(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.True(t, *clientCfg.TLSVerify)
	assert.Equal(t, 30*time.Second, clientCfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.hcl", []byte(`archivist { url = }`), 0o600))

	_, err := Load(fs, "missing.hcl", nil)
	assert.ErrorContains(t, err, "error reading config file")

	_, err = Load(fs, "bad.hcl", nil)
	assert.ErrorContains(t, err, "error decoding config file")
}

func TestArchivist_Validate(t *testing.T) {
	tests := []struct {
		name     string
		block    Archivist
		errorMsg []string
	}{
		{
			name:  "valid",
			block: Archivist{URL: "https://a", TokenFile: "t", Timeout: "1s"},
		},
		{
			name:     "everything missing",
			block:    Archivist{},
			errorMsg: []string{"archivist.url", "archivist.token_file"},
		},
		{
			name:     "bad durations",
			block:    Archivist{URL: "https://a", AuthToken: "x", Timeout: "soon", ConfirmTimeout: "-1m"},
			errorMsg: []string{"archivist.timeout", "archivist.confirm_timeout"},
		},
		{
			name:     "negative page size",
			block:    Archivist{URL: "https://a", AuthToken: "x", PageSize: -1},
			errorMsg: []string{"archivist.page_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if len(tt.errorMsg) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tt.errorMsg {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestClientConfig_TokenFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "empty", []byte("\n"), 0o600))

	block := Archivist{URL: "https://a", TokenFile: "missing"}
	_, err := block.ClientConfig(fs, nil)
	assert.ErrorContains(t, err, "error reading token file")

	block.TokenFile = "empty"
	_, err = block.ClientConfig(fs, nil)
	assert.ErrorContains(t, err, "is empty")
}
