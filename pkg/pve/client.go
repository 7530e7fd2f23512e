package pve

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getproxmoxd/proxmoxd/pkg/logging"
)

// APIPrefix is the fixed path prefix of the Proxmox VE JSON API.
const APIPrefix = "/api2/json/"

// Client talks to a Proxmox VE cluster. It holds exactly one credential:
// either a ticket+CSRF pair obtained via Login, or a static API token set at
// construction. Credentials are written once before the server starts
// handling requests and are read-only afterwards, so no locking is needed.
type Client struct {
	httpClient   *http.Client
	baseURL      *url.URL
	log          *slog.Logger
	pollInterval time.Duration

	ticket    string
	csrfToken string
	apiToken  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithInsecureTLS disables certificate verification, for clusters running on
// self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// WithAPIToken configures static API-token authentication. The resulting
// header value is "PVEAPIToken=<user>!<tokenName>=<tokenValue>". A client
// with a token set never logs in and never holds a ticket.
func WithAPIToken(user, tokenName, tokenValue string) Option {
	return func(c *Client) {
		c.apiToken = fmt.Sprintf("PVEAPIToken=%s!%s=%s", user, tokenName, tokenValue)
	}
}

// WithPollInterval overrides the task-poll interval. The default of two
// seconds is cheap relative to VM operation latency.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a client for the API at host:port. The host may be given
// with or without a scheme; without one, https is assumed (the Proxmox
// default). A trailing slash on the host is tolerated.
func NewClient(host string, port int, opts ...Option) (*Client, error) {
	scheme := "https"
	if strings.HasPrefix(host, "http://") {
		scheme = "http"
	}
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimSuffix(host, "/")

	base, err := url.Parse(fmt.Sprintf("%s://%s:%d%s", scheme, host, port, APIPrefix))
	if err != nil {
		return nil, urlError("host %q: %v", host, err)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:      base,
		log:          logging.Nop(),
		pollInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API base URL, including the API prefix.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Authenticated reports whether the client holds any credential.
func (c *Client) Authenticated() bool {
	return c.apiToken != "" || c.ticket != ""
}

// Login obtains a ticket+CSRF pair from access/ticket. It must be called
// before serving and must not be called on a token-authenticated client.
// Tickets are not refreshed; an expired ticket surfaces as an auth error on
// the next call.
func (c *Client) Login(ctx context.Context, user, password string) error {
	if c.apiToken != "" {
		return authError("client is token-authenticated; login not permitted")
	}

	endpoint, err := c.baseURL.Parse("access/ticket")
	if err != nil {
		return urlError("access/ticket: %v", err)
	}

	form := url.Values{}
	form.Set("username", user)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return internalError("build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError("login request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return authError("%d - %s", resp.StatusCode, string(body))
	}

	var ticket struct {
		Data struct {
			Ticket    string `json:"ticket"`
			CSRFToken string `json:"CSRFPreventionToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &ticket); err != nil {
		return jsonError("login response: %v", err)
	}
	if ticket.Data.Ticket == "" {
		return authError("login response carried no ticket")
	}

	c.ticket = ticket.Data.Ticket
	c.csrfToken = ticket.Data.CSRFToken

	c.log.Info("logged in to Proxmox", "user", user)
	return nil
}

// request performs one API call and decodes the response into out (which may
// be nil to discard the body). Successful bodies shaped {"data": X} are
// unwrapped to X; bodies without the wrapper are decoded directly. The
// executor never retries: VM lifecycle actions are not idempotent, so retry
// policy belongs to the caller.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	if !c.Authenticated() {
		return authError("no credentials configured")
	}

	endpoint, err := c.baseURL.Parse(path)
	if err != nil {
		return urlError("path %q: %v", path, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return internalError("encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return internalError("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", c.apiToken)
	} else {
		if c.csrfToken != "" {
			req.Header.Set("CSRFPreventionToken", c.csrfToken)
		}
		req.Header.Set("Cookie", "PVEAuthCookie="+c.ticket)
	}

	c.log.Debug("proxmox request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError("read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return decodeEnvelope(raw, out)
}

// decodeEnvelope unwraps the {"data": X} envelope when present and decodes
// the payload into out.
func decodeEnvelope(raw []byte, out any) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			if err := json.Unmarshal(data, out); err != nil {
				return jsonError("decode data envelope: %v", err)
			}
			return nil
		}
	}
	// Tolerant fallback for bodies without the wrapper.
	if err := json.Unmarshal(raw, out); err != nil {
		return jsonError("decode response: %v", err)
	}
	return nil
}

// get/post/put/del are thin wrappers used by the resource files.

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPut, path, body, out)
}

func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodDelete, path, nil, out)
}
