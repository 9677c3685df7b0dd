// Package ddragon loads static game data (champions, items, summoner spells
// and rune trees) from Riot's Data Dragon CDN.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"runedraft/internal/logger"
)

// DefaultBaseURL is the public Data Dragon host.
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

const (
	datasetChampions = "champion"
	datasetItems     = "item"
	datasetSummoners = "summoner"
	datasetRunes     = "runesReforged"
)

// Params configures a Client.
type Params struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	// Cache is optional; without it every Load hits the network.
	Cache  *Cache
	Logger logger.Logger
}

// Client fetches Data Dragon dumps.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *Cache
	log        logger.Logger
}

// NewClient creates a new Data Dragon client
func NewClient(p Params) *Client {
	c := &Client{
		baseURL:    p.BaseURL,
		userAgent:  p.UserAgent,
		httpClient: p.HTTPClient,
		cache:      p.Cache,
		log:        p.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	return c
}

// Load fetches the version list and every dump for the current version.
func (c *Client) Load(ctx context.Context) (*Static, error) {
	body, err := c.get(ctx, c.baseURL+"/api/versions.json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions: %w", err)
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, fmt.Errorf("failed to parse versions: %w", err)
	}
	if len(versions) < 2 {
		return nil, fmt.Errorf("expected at least 2 versions, got %d", len(versions))
	}
	current := versions[0]

	var dumps Dumps
	for _, d := range []struct {
		name string
		dst  *[]byte
	}{
		{datasetChampions, &dumps.Champions},
		{datasetItems, &dumps.Items},
		{datasetSummoners, &dumps.Summoners},
		{datasetRunes, &dumps.Runes},
	} {
		b, err := c.dump(ctx, current, d.name)
		if err != nil {
			return nil, err
		}
		*d.dst = b
	}

	static, err := NewStatic(current, versions[1], dumps)
	if err != nil {
		return nil, err
	}

	c.log.InfoW("loaded static data",
		"version", current,
		"previous", versions[1],
		"champions", len(static.champions),
		"items", len(static.itemNames),
	)
	return static, nil
}

func (c *Client) dump(ctx context.Context, version, dataset string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, version, dataset)
		if err != nil {
			c.log.WarnW("cache read failed", "dataset", dataset, "error", err)
		} else if ok {
			c.log.DebugW("cache hit", "version", version, "dataset", dataset)
			return body, nil
		}
	}

	url := fmt.Sprintf("%s/cdn/%s/data/en_US/%s.json", c.baseURL, version, dataset)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", dataset, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, version, dataset, body); err != nil {
			c.log.WarnW("cache write failed", "dataset", dataset, "error", err)
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.DebugW("request", "method", req.Method, "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
