package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrNotFound is returned when the catalog service has no such entity.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-2xx responses from the catalog service.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog service returned %d for %s", e.StatusCode, e.URL)
}

// componentListFields is the field selection used by the component listing.
const componentListFields = "components(id,name,typeId,tags,description,notes,responsibilities,teams,platformId)"

// ClientOptions tunes the catalog client.
type ClientOptions struct {
	Timeout   time.Duration
	CacheSize int
	// CacheTTL of zero disables response caching.
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Client fetches catalog data from the catalog service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *expirable.LRU[string, []byte]
}

// NewClient creates a client for the catalog service at baseURL.
func NewClient(baseURL string, opts ClientOptions) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing service base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service base url %q must be http or https", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 128
		}
		c.cache = expirable.NewLRU[string, []byte](size, nil, opts.CacheTTL)
	}
	return c, nil
}

// BaseURL returns the service base url the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListComponents returns every component with the fields the listing needs.
func (c *Client) ListComponents(ctx context.Context) ([]Component, error) {
	var resp struct {
		Components []Component `json:"components"`
	}
	if err := c.getJSON(ctx, "/v1/components?fields="+url.QueryEscape(componentListFields), &resp); err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	return resp.Components, nil
}

// GetComponent returns a single component, or ErrNotFound.
func (c *Client) GetComponent(ctx context.Context, id string) (*Component, error) {
	var resp struct {
		Component *Component `json:"component"`
	}
	if err := c.getJSON(ctx, "/v1/components/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("getting component %s: %w", id, err)
	}
	if resp.Component == nil {
		return nil, fmt.Errorf("getting component %s: %w", id, ErrNotFound)
	}
	return resp.Component, nil
}

// ComponentDependencies returns the component-level dependency graph.
func (c *Client) ComponentDependencies(ctx context.Context) (*Dependencies, error) {
	var resp struct {
		ComponentDependencies *Dependencies `json:"componentDependencies"`
	}
	if err := c.getJSON(ctx, "/v1/summary/component-dependencies", &resp); err != nil {
		return nil, fmt.Errorf("getting component dependencies: %w", err)
	}
	return orEmpty(resp.ComponentDependencies), nil
}

// SubComponentDependencies returns the span-level dependency graph.
func (c *Client) SubComponentDependencies(ctx context.Context) (*Dependencies, error) {
	var resp struct {
		SubComponentDependencies *Dependencies `json:"subComponentDependencies"`
	}
	if err := c.getJSON(ctx, "/v1/summary/sub-component-dependencies", &resp); err != nil {
		return nil, fmt.Errorf("getting sub-component dependencies: %w", err)
	}
	return orEmpty(resp.SubComponentDependencies), nil
}

func orEmpty(d *Dependencies) *Dependencies {
	if d == nil {
		return &Dependencies{}
	}
	return d
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(path); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if c.cache != nil {
		c.cache.Add(path, body)
	}
	return body, nil
}
