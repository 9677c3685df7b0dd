// Package lcu talks to the League Client's local HTTPS API.
package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"runedraft/internal/logger"
)

// ErrGameClientUnavailable means the client could not be reached at all.
var ErrGameClientUnavailable = errors.New("league client is unavailable")

const maxErrorBody = 200

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Params configures a Client.
type Params struct {
	Credentials *Credentials
	// BaseURL overrides https://127.0.0.1:<port>.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client represents a connection to the League Client
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	log        logger.Logger
}

// NewClient creates a new LCU client
func NewClient(p Params) *Client {
	c := &Client{
		httpClient: p.HTTPClient,
		baseURL:    p.BaseURL,
		log:        p.Logger,
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	if c.httpClient == nil {
		timeout := p.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // LCU uses self-signed cert
				},
			},
			Timeout: timeout,
		}
	}
	if p.Credentials != nil {
		if c.baseURL == "" {
			c.baseURL = fmt.Sprintf("https://127.0.0.1:%s", p.Credentials.Port)
		}
		c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte("riot:"+p.Credentials.Password))
	}
	return c
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	c.log.DebugW("lcu request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrGameClientUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s %s: %v", ErrGameClientUnavailable, method, path, err)
	}
	c.log.DebugW("lcu response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: truncateBody(string(data), maxErrorBody)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// truncateBody cuts text to at most n bytes without splitting a rune.
func truncateBody(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
