package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Version of this client library, reported in the User-Agent header.
const Version = "0.1.0"

// DefaultEndpoint is the public Hub. Override it with WithEndpoint or the
// HF_ENDPOINT environment variable, e.g. to point at a local mirror.
const DefaultEndpoint = "https://huggingface.co"

const defaultTimeout = 30 * time.Second

// Client talks to the Hub REST API. The zero-configuration form
//
//	c := hub.NewClient()
//
// is fully usable: it targets the public Hub anonymously, picking up an
// access token from the environment or the token file when one exists.
type Client struct {
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint points the client at a different Hub API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithToken sets the access token sent as a bearer credential. It takes
// precedence over tokens found in the environment or the token file.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// NewClient builds a Hub client. Defaults are resolved first (HF_ENDPOINT,
// HF_TOKEN, HUGGING_FACE_HUB_TOKEN, ~/.huggingface/token), then options are
// applied in order.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		userAgent:  "huggingface-hub-go/" + Version,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	if v := os.Getenv("HF_ENDPOINT"); v != "" {
		c.endpoint = strings.TrimRight(v, "/")
	}
	c.token = resolveToken()

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the API base URL the client targets.
func (c *Client) Endpoint() string { return c.endpoint }

// HasToken reports whether the client will authenticate its requests.
func (c *Client) HasToken() bool { return c.token != "" }

// resolveToken looks up an access token the way the official clients do:
// HF_TOKEN, then the legacy HUGGING_FACE_HUB_TOKEN, then the token file
// written by the login flow.
func resolveToken() string {
	if v := os.Getenv("HF_TOKEN"); v != "" {
		return v
	}
	if v := os.Getenv("HUGGING_FACE_HUB_TOKEN"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, ".huggingface", "token"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// apiURL joins the endpoint, an API path and optional query parameters.
func (c *Client) apiURL(path string, params url.Values) string {
	if len(params) == 0 {
		return c.endpoint + path
	}
	return c.endpoint + path + "?" + params.Encode()
}

// getJSON issues a GET against rawURL and decodes the body into out.
// It returns the rel="next" URL from the Link header when the server
// paginates, or "" on the last page.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
	}

	next := nextPageURL(resp.Header.Get("Link"))
	if next != "" {
		// Link targets may be relative to the request URL.
		if u, err := url.Parse(next); err == nil {
			next = resp.Request.URL.ResolveReference(u).String()
		}
	}
	return next, nil
}

// nextPageURL extracts the rel="next" target from a Link header.
func nextPageURL(header string) string {
	for _, link := range strings.Split(header, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}
		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, attr := range parts[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
