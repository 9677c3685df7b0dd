package lcu

import (
	"context"
	"fmt"

	"runedraft/internal/build"
)

// RunePage is a rune page as stored by the client.
type RunePage struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsEditable bool   `json:"isEditable"`
	IsActive   bool   `json:"isActive"`
	Current    bool   `json:"current"`
}

// RunePages lists every rune page
func (c *Client) RunePages(ctx context.Context) ([]RunePage, error) {
	var pages []RunePage
	if err := c.Get(ctx, "/lol-perks/v1/pages", &pages); err != nil {
		return nil, fmt.Errorf("failed to list rune pages: %w", err)
	}
	return pages, nil
}

// CreateRunePage creates a rune page
func (c *Client) CreateRunePage(ctx context.Context, page build.RunePagePayload) error {
	if err := c.Post(ctx, "/lol-perks/v1/pages", page, nil); err != nil {
		return fmt.Errorf("failed to create rune page %q: %w", page.Name, err)
	}
	return nil
}

// DeleteRunePage deletes a rune page by id
func (c *Client) DeleteRunePage(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("/lol-perks/v1/pages/%d", id)); err != nil {
		return fmt.Errorf("failed to delete rune page %d: %w", id, err)
	}
	return nil
}

// CurrentRunePage returns the selected rune page
func (c *Client) CurrentRunePage(ctx context.Context) (RunePage, error) {
	var page RunePage
	if err := c.Get(ctx, "/lol-perks/v1/currentpage", &page); err != nil {
		return RunePage{}, fmt.Errorf("failed to get current rune page: %w", err)
	}
	return page, nil
}

// SetCurrentRunePage selects a rune page by id
func (c *Client) SetCurrentRunePage(ctx context.Context, id int64) error {
	if err := c.Put(ctx, "/lol-perks/v1/currentpage", id, nil); err != nil {
		return fmt.Errorf("failed to set current rune page %d: %w", id, err)
	}
	return nil
}
