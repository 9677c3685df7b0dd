// Package mobalytics reads champion builds from the Mobalytics GraphQL API.
package mobalytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"runedraft/internal/datasource"
	"runedraft/internal/ddragon"
	"runedraft/internal/logger"
	"runedraft/internal/static"
)

const DefaultGraphQLURL = "https://app.mobalytics.gg/api/lol/graphql/v1/query"

// ChampionLookup resolves champion ids to Data Dragon identifiers.
type ChampionLookup interface {
	Champion(id int) (ddragon.Champion, bool)
}

// Params configures a Client.
type Params struct {
	GraphQLURL string
	UserAgent  string
	HTTPClient *http.Client
	Champions  ChampionLookup
	Logger     logger.Logger
}

// Client opens per-patch Fetchers.
type Client struct {
	graphqlURL string
	userAgent  string
	httpClient *http.Client
	champions  ChampionLookup
	log        logger.Logger
}

// NewClient creates a new Mobalytics client
func NewClient(p Params) *Client {
	c := &Client{
		graphqlURL: p.GraphQLURL,
		userAgent:  p.UserAgent,
		httpClient: p.HTTPClient,
		champions:  p.Champions,
		log:        p.Logger,
	}
	if c.graphqlURL == "" {
		c.graphqlURL = DefaultGraphQLURL
	}
	if c.userAgent == "" {
		c.userAgent = static.UserAgent
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	return c
}

// Open runs the initial champion query for one patch.
func (c *Client) Open(ctx context.Context, championID int, queue *static.Queue, patch ddragon.Patch) (*Fetcher, error) {
	champ, ok := c.champions.Champion(championID)
	if !ok {
		return nil, fmt.Errorf("unknown champion id %d", championID)
	}

	f := &Fetcher{
		client:     c,
		championID: championID,
		slug:       strings.ToLower(champ.Slug),
		queue:      queue,
		patch:      patch.MajorMinor(),
	}
	initial, err := f.query(ctx, queryKey{region: static.DefaultRegion})
	if err != nil {
		return nil, err
	}
	f.initial = initial
	return f, nil
}

// post sends one query and returns data.lol.
func (c *Client) post(ctx context.Context, body request) (gjson.Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.DebugW("request", "method", req.Method, "url", c.graphqlURL, "variables", string(payload))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, fmt.Errorf("%w: %v", datasource.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", datasource.ErrTransport, err)
	}
	c.log.DebugW("response", "url", c.graphqlURL, "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%w: mobalytics returned status %d", datasource.ErrTransport, resp.StatusCode)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON from mobalytics", datasource.ErrTransport)
	}

	doc := gjson.ParseBytes(data)
	if doc.Get("errors").Exists() {
		return gjson.Result{}, fmt.Errorf("%w: mobalytics errors: %s", datasource.ErrNoData, doc.Get("errors.0.message").String())
	}
	lol := doc.Get("data.lol")
	if !lol.Get("selectedBuild").Exists() {
		return gjson.Result{}, fmt.Errorf("%w: no selected build for %s", datasource.ErrNoData, body.Variables.Slug)
	}
	return lol, nil
}
