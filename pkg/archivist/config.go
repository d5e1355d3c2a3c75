package archivist

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultPageSize is the number of records fetched per list request.
	DefaultPageSize = 500

	defaultTimeout             = 30 * time.Second
	defaultPollInitialInterval = 1 * time.Second
	defaultPollMaxInterval     = 30 * time.Second
	defaultConfirmTimeout      = 20 * time.Minute
)

// Config contains configuration for an Archivist client.
//
// Example configuration (HCL, see internal/config):
//
//	archivist {
//	  url        = "https://rkvst.poc.jitsuin.io"
//	  token_file = ".auth_token"
//	  tls_verify = true
//	}
type Config struct {
	// BaseURL is the URL of the Archivist instance without the
	// "/archivist" root, e.g. "https://rkvst.poc.jitsuin.io".
	BaseURL string `json:"baseUrl"`

	// AuthToken is the bearer token sent with every request.
	AuthToken string `json:"-"` // Don't marshal auth token to JSON

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development/testing with self-signed certs.
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// CertFile is an optional PEM client certificate. KeyFile may be left
	// empty when the private key is in the same file.
	CertFile string `json:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty"`

	// Timeout for a single HTTP request.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// PollInitialInterval and PollMaxInterval bound the backoff between
	// confirmation reads.
	PollInitialInterval time.Duration `json:"pollInitialInterval,omitempty"`
	PollMaxInterval     time.Duration `json:"pollMaxInterval,omitempty"`

	// ConfirmTimeout is the maximum wall-clock time spent waiting for a
	// record to become CONFIRMED.
	// Default: 20 minutes
	ConfirmTimeout time.Duration `json:"confirmTimeout,omitempty"`

	// PageSize is the default list page size.
	// Default: 500
	PageSize int `json:"pageSize,omitempty"`

	// UserAgent is sent as the User-Agent header when set.
	UserAgent string `json:"userAgent,omitempty"`

	// HTTPClient overrides the client built from the TLS settings above.
	HTTPClient *http.Client `json:"-"`

	// Logger is optional.
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify:           &tlsVerify,
		Timeout:             defaultTimeout,
		PollInitialInterval: defaultPollInitialInterval,
		PollMaxInterval:     defaultPollMaxInterval,
		ConfirmTimeout:      defaultConfirmTimeout,
		PageSize:            DefaultPageSize,
	}
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.PollInitialInterval == 0 {
		c.PollInitialInterval = defaults.PollInitialInterval
	}
	if c.PollMaxInterval == 0 {
		c.PollMaxInterval = defaults.PollMaxInterval
	}
	if c.ConfirmTimeout == 0 {
		c.ConfirmTimeout = defaults.ConfirmTimeout
	}
	if c.PageSize == 0 {
		c.PageSize = defaults.PageSize
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required.Error("base_url is required"),
			validation.By(validateBaseURL)),
		validation.Field(&c.AuthToken, validation.Required.Error("auth_token is required")),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0)).Exclusive().
			Error("timeout must be positive")),
		validation.Field(&c.PollInitialInterval, validation.Min(time.Duration(0)).Exclusive().
			Error("poll_initial_interval must be positive")),
		validation.Field(&c.PollMaxInterval, validation.Min(c.PollInitialInterval).
			Error("poll_max_interval must not be less than poll_initial_interval")),
		validation.Field(&c.ConfirmTimeout, validation.Min(time.Duration(0)).Exclusive().
			Error("confirm_timeout must be positive")),
		validation.Field(&c.PageSize, validation.Min(1).Error("page_size must be at least 1")),
	); err != nil {
		return err
	}

	if c.KeyFile != "" && c.CertFile == "" {
		return fmt.Errorf("key_file requires cert_file")
	}

	return nil
}

func validateBaseURL(value interface{}) error {
	s, _ := value.(string)
	parsedURL, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	return nil
}

// NewHTTPClient creates an HTTP client carrying the connection-level TLS
// settings (verification and optional client certificate).
func (c *Config) NewHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	if c.CertFile != "" {
		keyFile := c.KeyFile
		if keyFile == "" {
			keyFile = c.CertFile
		}
		cert, err := tls.LoadX509KeyPair(c.CertFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}, nil
}
