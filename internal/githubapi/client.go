// Package githubapi issues authenticated GET requests to the GitHub REST API
// and classifies the responses.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/pkg/shared/httpclient"
)

// Media types understood by the client.
const (
	MediaTypeJSON  = "application/vnd.github+json"
	MediaTypeSARIF = "application/sarif+json"
)

// Client performs single-attempt GET requests against a fixed API host.
type Client struct {
	http      *resty.Client
	baseURL   string
	token     string
	userAgent string
	logger    hclog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client sending token as the credential. An empty token is
// sent as is and left for the server to reject. Redirect following is
// switched off on httpc so that a 3xx status is reported, not resolved.
func New(httpc *resty.Client, token string, opts ...Option) *Client {
	if httpc == nil {
		httpc = resty.New()
	}
	c := &Client{
		http:      httpclient.DisableRedirects(httpc),
		baseURL:   config.DefaultBaseURL,
		token:     token,
		userAgent: config.DefaultUserAgent,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client using the http_client and github sections of cfg.
func NewFromConfig(cfg *config.Config, logger hclog.Logger, token string, opts ...Option) (*Client, error) {
	httpc, err := httpclient.New(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP client: %w", err)
	}

	base := []Option{
		WithBaseURL(cfg.GitHub.BaseURL),
		WithUserAgent(cfg.GitHub.UserAgent),
	}
	if logger != nil {
		base = append(base, WithLogger(logger))
	}
	return New(httpc.RestyClient, token, append(base, opts...)...), nil
}

// Request issues GET path with the given Accept header. path is server
// relative, starts with "/" and may carry a query string.
//
// A status outside [200,300) yields an *APIError carrying the raw body.
// Transport failures are returned wrapped but otherwise unclassified.
func (c *Client) Request(ctx context.Context, path, accept string) (*Response, error) {
	if accept == "" {
		accept = MediaTypeJSON
	}

	c.logger.Debug("sending request", "path", path, "accept", accept)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+c.token).
		SetHeader("Accept", accept).
		SetHeader("User-Agent", c.userAgent).
		Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	raw := string(resp.Body())
	status := resp.StatusCode()
	c.logger.Debug("received response", "path", path, "status", status, "bytes", len(raw))

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: status, Message: raw}
	}

	return &Response{
		StatusCode: status,
		Data:       parseBody(raw, accept),
		Raw:        raw,
		Header:     resp.Header(),
	}, nil
}

// IsSARIF reports whether accept negotiates the SARIF representation.
func IsSARIF(accept string) bool {
	return strings.Contains(strings.ToLower(accept), "sarif")
}

// parseBody keeps SARIF verbatim and decodes everything else as JSON,
// falling back to the raw text when decoding fails.
func parseBody(raw, accept string) any {
	if IsSARIF(accept) {
		return raw
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return raw
	}
	return data
}
