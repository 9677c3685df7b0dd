package lcu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ItemSets is a summoner's item set collection, kept as raw JSON so fields
// we do not model survive a read-modify-write.
type ItemSets struct {
	SummonerID int64
	raw        []byte
}

// NewItemSets wraps a raw collection document.
func NewItemSets(summonerID int64, raw []byte) *ItemSets {
	return &ItemSets{SummonerID: summonerID, raw: raw}
}

// Raw returns the collection document.
func (s *ItemSets) Raw() []byte { return s.raw }

// Titles returns the title of every set in collection order.
func (s *ItemSets) Titles() []string {
	var titles []string
	for _, set := range gjson.GetBytes(s.raw, "itemSets").Array() {
		titles = append(titles, set.Get("title").String())
	}
	return titles
}

// Rebuild returns a new collection with the sets for which drop returns true
// removed and the given sets placed in front.
func (s *ItemSets) Rebuild(drop func(title string) bool, prepend ...any) (*ItemSets, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	n := 0
	for _, set := range prepend {
		b, err := json.Marshal(set)
		if err != nil {
			return nil, fmt.Errorf("failed to encode item set: %w", err)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(b)
		n++
	}
	for _, set := range gjson.GetBytes(s.raw, "itemSets").Array() {
		if drop(set.Get("title").String()) {
			continue
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(set.Raw)
		n++
	}
	buf.WriteByte(']')

	raw := s.raw
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte(`{}`)
	}
	out, err := sjson.SetRawBytes(raw, "itemSets", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite item sets: %w", err)
	}
	return &ItemSets{SummonerID: s.SummonerID, raw: out}, nil
}

// CurrentSummonerID returns the logged-in summoner's id
func (c *Client) CurrentSummonerID(ctx context.Context) (int64, error) {
	var summoner struct {
		SummonerID int64 `json:"summonerId"`
	}
	if err := c.Get(ctx, "/lol-summoner/v1/current-summoner", &summoner); err != nil {
		return 0, fmt.Errorf("failed to get current summoner: %w", err)
	}
	return summoner.SummonerID, nil
}

func itemSetsPath(summonerID int64) string {
	return fmt.Sprintf("/lol-item-sets/v1/item-sets/%d/sets", summonerID)
}

// ItemSets reads the current summoner's item set collection
func (c *Client) ItemSets(ctx context.Context) (*ItemSets, error) {
	id, err := c.CurrentSummonerID(ctx)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.Get(ctx, itemSetsPath(id), &raw); err != nil {
		return nil, fmt.Errorf("failed to get item sets: %w", err)
	}
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	return NewItemSets(id, raw), nil
}

// ReplaceItemSets writes the whole collection back
func (c *Client) ReplaceItemSets(ctx context.Context, sets *ItemSets) error {
	if err := c.Put(ctx, itemSetsPath(sets.SummonerID), json.RawMessage(sets.raw), nil); err != nil {
		return fmt.Errorf("failed to replace item sets: %w", err)
	}
	return nil
}
