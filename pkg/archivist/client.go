package archivist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	// Root is the first path segment of every Archivist endpoint.
	Root = "archivist"

	// HeaderRequestTotalCount asks the server to report the collection size.
	HeaderRequestTotalCount = "X-Request-Total-Count"

	// HeaderTotalCount carries the collection size in count responses.
	HeaderTotalCount = "X-Total-Count"

	// HeaderNextPageToken carries the continuation token of list responses.
	HeaderNextPageToken = "X-Next-Page-Token"
)

// Client is an Archivist REST API client. It is immutable after New and
// safe for concurrent use; each call issues its own request.
type Client struct {
	config  *Config
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// response is a fully read HTTP response.
type response struct {
	status int
	header http.Header
	body   []byte
}

// New creates a new Archivist client. cfg is copied; later changes to it
// do not affect the client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid archivist config: config is nil")
	}
	c := *cfg
	if c.TLSVerify != nil {
		tlsVerify := *c.TLSVerify
		c.TLSVerify = &tlsVerify
	}
	c.applyDefaults()

	// Validate configuration
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid archivist config: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = c.NewHTTPClient()
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		config:  &c,
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		client:  httpClient,
		logger:  c.Logger.Named("archivist"),
	}, nil
}

// Assets returns the assets endpoint.
func (c *Client) Assets() *Assets {
	return &Assets{endpoint: newEndpoint[Asset](c, assetsSubpath, assetsLabel)}
}

// Subjects returns the subjects endpoint.
func (c *Client) Subjects() *Subjects {
	return &Subjects{endpoint: newEndpoint[Subject](c, subjectsSubpath, subjectsLabel)}
}

// Events returns the events endpoint.
func (c *Client) Events() *Events {
	return &Events{endpoint: newEndpoint[Event](c, eventsSubpath, eventsLabel)}
}

// CompliancePolicies returns the compliance policies endpoint.
func (c *Client) CompliancePolicies() *CompliancePolicies {
	return &CompliancePolicies{
		endpoint: newEndpoint[CompliancePolicy](c, compliancePoliciesSubpath, compliancePoliciesLabel),
	}
}

// Compliance returns the compliance endpoint.
func (c *Client) Compliance() *ComplianceClient {
	return &ComplianceClient{client: c}
}

// url joins the base URL, the archivist root, the path and the query.
func (c *Client) url(path string, q query) string {
	u := c.baseURL + "/" + Root + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do executes a single request. It never retries. Non-2xx responses are
// returned as *Error values carrying the status and body.
func (c *Client) do(ctx context.Context, op, method, path string, q query, body any, header http.Header) (*response, error) {
	endpoint := c.url(path, q)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Op: op, Err: ErrArchivist, Msg: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrTransport, err), Msg: "failed to create request"}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrTransport, err), Msg: method + " " + endpoint}
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrTransport, err), Msg: "failed to read response"}
	}

	c.logger.Debug("request complete",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if err := errorForResponse(op, resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	return &response{
		status: resp.StatusCode,
		header: resp.Header,
		body:   respBody,
	}, nil
}

// decodeRecord decodes a JSON object body. An empty body decodes to an
// empty, non-nil record.
func decodeRecord[T ~map[string]any](op string, resp *response) (T, error) {
	record := T{}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(resp.body, &record); err != nil {
		return nil, &Error{
			Op:         op,
			StatusCode: resp.status,
			Body:       resp.body,
			Err:        ErrArchivist,
			Msg:        fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return record, nil
}
