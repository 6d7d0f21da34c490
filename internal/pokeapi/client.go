// Package pokeapi is a read-only client for the public Pokémon REST API.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pokeagent/pokeagent/internal/cache"
)

// DefaultBaseURL is the public PokeAPI v2 endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// maxBodyBytes bounds a single upstream payload.
const maxBodyBytes = 8 << 20

// Client fetches species data. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
}

// ConnectivityStatus is the result of a reachability probe against the API.
type ConnectivityStatus struct {
	Connected bool
	Latency   time.Duration
}

// ClientOption configures the Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
}

// WithBaseURL points the client at another API root, such as a local mirror.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithCache caches successful response bodies by URL for ttl.
func WithCache(c cache.Cache, ttl time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

// NewClient creates a new API client.
func NewClient(opts ...ClientOption) *Client {
	o := &clientOptions{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		httpClient: o.httpClient,
		cache:      o.cache,
		cacheTTL:   o.cacheTTL,
	}
}

// CheckConnectivity probes the API root.
func (c *Client) CheckConnectivity(ctx context.Context) ConnectivityStatus {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return ConnectivityStatus{Connected: false}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ConnectivityStatus{Connected: false}
	}
	resp.Body.Close()
	return ConnectivityStatus{
		Connected: resp.StatusCode < http.StatusInternalServerError,
		Latency:   time.Since(start),
	}
}

// normalize trims and lower-cases a species name.
func normalize(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", ErrInvalidName
	}
	return n, nil
}

func (c *Client) pokemonURL(name string) string {
	return c.baseURL + "/pokemon/" + url.PathEscape(name) + "/"
}

// fetchPokemon loads the /pokemon resource for an already normalized name.
func (c *Client) fetchPokemon(ctx context.Context, name string) (*pokemonPayload, error) {
	var p pokemonPayload
	if err := c.getJSON(ctx, c.pokemonURL(name), &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

// fetchSpecies follows the species link of a pokemon resource.
func (c *Client) fetchSpecies(ctx context.Context, p *pokemonPayload) (*speciesPayload, error) {
	if p.Species.URL == "" {
		return nil, fmt.Errorf("%w: no species resource for %q", ErrUpstream, p.Name)
	}
	var s speciesPayload
	if err := c.getJSON(ctx, p.Species.URL, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// getJSON decodes the resource at rawURL into out, consulting the cache first.
// A 404 maps to ErrNotFound; any other failure maps to ErrUpstream.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUpstream, rawURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, rawURL)
		if err != nil {
			slog.Warn("pokeapi cache read failed", "url", rawURL, "error", err)
		} else if ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUpstream, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrUpstream, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUpstream, rawURL, err)
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, rawURL, body, c.cacheTTL); err != nil {
			slog.Warn("pokeapi cache write failed", "url", rawURL, "error", err)
		}
	}
	return body, nil
}
