// Package ugg reads champion statistics from U.GG.
package ugg

import (
	"context"
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

const (
	DefaultVersionsURL = "https://static.u.gg/assets/lol/riot_patch_update/prod/ugg/ugg-api-versions.json"
	DefaultStatsURL    = "https://stats2.u.gg/lol"
)

// Params configures a Client.
type Params struct {
	VersionsURL string
	StatsURL    string
	UserAgent   string
	HTTPClient  *http.Client
	Logger      logger.Logger
}

// Client opens per-patch Fetchers.
type Client struct {
	versionsURL string
	statsURL    string
	userAgent   string
	httpClient  *http.Client
	log         logger.Logger
}

// NewClient creates a new U.GG client
func NewClient(p Params) *Client {
	c := &Client{
		versionsURL: p.VersionsURL,
		statsURL:    strings.TrimSuffix(p.StatsURL, "/"),
		userAgent:   p.UserAgent,
		httpClient:  p.HTTPClient,
		log:         p.Logger,
	}
	if c.versionsURL == "" {
		c.versionsURL = DefaultVersionsURL
	}
	if c.statsURL == "" {
		c.statsURL = DefaultStatsURL
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

// apiVersions is one patch's entry in the API version manifest.
type apiVersions struct {
	PrimaryRoles string
	Overview     string
	Rankings     string
}

// majorMinor converts "1.5.0" to "1.5"
func majorMinor(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

// Open fetches every document needed for a champion on one patch.
func (c *Client) Open(ctx context.Context, championID int, queue *static.Queue, patch ddragon.Patch) (*Fetcher, error) {
	underscored := patch.Underscored()

	manifest, err := c.getJSON(ctx, c.versionsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch api versions: %w", err)
	}
	entry := manifest.Get(underscored)
	if !entry.Exists() {
		return nil, fmt.Errorf("%w: no U.GG data for patch %s", datasource.ErrNoData, underscored)
	}
	versions := apiVersions{
		PrimaryRoles: entry.Get("primary_roles").String(),
		Overview:     entry.Get("overview").String(),
		Rankings:     entry.Get("rankings").String(),
	}

	primaryURL := fmt.Sprintf("%s/%s/primary_roles/%s/%s.json",
		c.statsURL, majorMinor(versions.PrimaryRoles), underscored, versions.PrimaryRoles)
	primary, err := c.getJSON(ctx, primaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch primary roles: %w", err)
	}
	roles := primary.Get(fmt.Sprint(championID))
	if !roles.Exists() {
		return nil, fmt.Errorf("%w: no primary roles for champion %d on patch %s", datasource.ErrNoData, championID, underscored)
	}

	overviewURL := fmt.Sprintf("%s/%s/overview/%s/%s/%d/%s.json",
		c.statsURL, majorMinor(versions.Overview), underscored, queue.UGGName, championID, versions.Overview)
	overview, err := c.getJSON(ctx, overviewURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overview: %w", err)
	}

	rankingsURL := fmt.Sprintf("%s/%s/rankings/%s/%s/%d/%s.json",
		c.statsURL, majorMinor(versions.Rankings), underscored, queue.UGGName, championID, versions.Rankings)
	rankings, err := c.getJSON(ctx, rankingsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rankings: %w", err)
	}

	c.log.DebugW("opened u.gg data", "champion", championID, "queue", queue, "patch", underscored)
	return &Fetcher{
		championID:   championID,
		queue:        queue,
		patch:        underscored,
		primaryRoles: roles,
		overview:     overview,
		rankings:     rankings,
	}, nil
}

// getJSON fetches and validates a JSON document. 403 and 404 mean U.GG has
// no such document.
func (c *Client) getJSON(ctx context.Context, url string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.DebugW("request", "method", req.Method, "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, fmt.Errorf("%w: %v", datasource.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", datasource.ErrTransport, err)
	}
	c.log.DebugW("response", "url", url, "status", resp.StatusCode, "bytes", len(body))

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound:
		return gjson.Result{}, fmt.Errorf("%w: %s returned status %d", datasource.ErrNoData, url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return gjson.Result{}, fmt.Errorf("%w: %s returned status %d", datasource.ErrTransport, url, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON from %s", datasource.ErrTransport, url)
	}
	return gjson.ParseBytes(body), nil
}
