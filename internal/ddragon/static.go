package ddragon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Patch is a Data Dragon version such as "14.3.1".
type Patch struct {
	Version string
}

// MajorMinor returns "14.3".
func (p Patch) MajorMinor() string {
	parts := strings.Split(p.Version, ".")
	if len(parts) < 2 {
		return p.Version
	}
	return parts[0] + "." + parts[1]
}

// Underscored returns "14_3".
func (p Patch) Underscored() string {
	return strings.ReplaceAll(p.MajorMinor(), ".", "_")
}

func (p Patch) String() string { return p.Version }

// Champion holds the identifiers of one champion.
type Champion struct {
	ID   int
	Name string // display name, e.g. "Wukong"
	Slug string // Data Dragon id, e.g. "MonkeyKing"
}

// RuneTree is a rune style with its runes in slot order.
type RuneTree struct {
	ID    int
	Name  string
	Runes []int
}

// Static is the immutable game data of one Data Dragon version.
type Static struct {
	Current  Patch
	Previous Patch

	champions map[int]Champion
	items     map[string]int
	itemNames map[int]string
	spells    map[int]string
	trees     map[int]RuneTree
}

type championDump struct {
	Data map[string]struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

type itemDump struct {
	Data map[string]struct {
		Name string `json:"name"`
	} `json:"data"`
}

type summonerDump struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

type runeTreeDump struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Slots []struct {
		Runes []struct {
			ID int `json:"id"`
		} `json:"runes"`
	} `json:"slots"`
}

// Dumps carries the raw JSON documents Static is built from.
type Dumps struct {
	Champions []byte
	Items     []byte
	Summoners []byte
	Runes     []byte
}

// NewStatic parses the raw dumps of one version.
func NewStatic(current, previous string, dumps Dumps) (*Static, error) {
	s := &Static{
		Current:   Patch{Version: current},
		Previous:  Patch{Version: previous},
		champions: make(map[int]Champion),
		items:     make(map[string]int),
		itemNames: make(map[int]string),
		spells:    make(map[int]string),
		trees:     make(map[int]RuneTree),
	}

	var champs championDump
	if err := json.Unmarshal(dumps.Champions, &champs); err != nil {
		return nil, fmt.Errorf("failed to parse champions: %w", err)
	}
	for slug, champ := range champs.Data {
		key, err := strconv.Atoi(champ.Key)
		if err != nil {
			continue
		}
		s.champions[key] = Champion{ID: key, Name: champ.Name, Slug: slug}
	}

	var items itemDump
	if err := json.Unmarshal(dumps.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	ids := make([]int, 0, len(items.Data))
	for idStr, item := range items.Data {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		s.itemNames[id] = item.Name
		ids = append(ids, id)
	}
	// Mode variants reuse names under larger ids; the lowest id wins.
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	for _, id := range ids {
		s.items[normalizeName(s.itemNames[id])] = id
	}

	var spells summonerDump
	if err := json.Unmarshal(dumps.Summoners, &spells); err != nil {
		return nil, fmt.Errorf("failed to parse summoner spells: %w", err)
	}
	for _, spell := range spells.Data {
		key, err := strconv.Atoi(spell.Key)
		if err != nil {
			continue
		}
		s.spells[key] = spell.Name
	}

	var trees []runeTreeDump
	if err := json.Unmarshal(dumps.Runes, &trees); err != nil {
		return nil, fmt.Errorf("failed to parse runes: %w", err)
	}
	for _, tree := range trees {
		t := RuneTree{ID: tree.ID, Name: tree.Name}
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				t.Runes = append(t.Runes, r.ID)
			}
		}
		s.trees[tree.ID] = t
	}

	return s, nil
}

// Champion returns the champion with the given numeric id.
func (s *Static) Champion(id int) (Champion, bool) {
	c, ok := s.champions[id]
	return c, ok
}

// ChampionName returns the display name, or "Champion <id>" when unknown.
func (s *Static) ChampionName(id int) string {
	if c, ok := s.champions[id]; ok {
		return c.Name
	}
	return fmt.Sprintf("Champion %d", id)
}

// ItemID resolves an item by name, ignoring case, punctuation and spaces.
func (s *Static) ItemID(name string) (int, bool) {
	id, ok := s.items[normalizeName(name)]
	return id, ok
}

// ItemName returns the item name for a given ID
func (s *Static) ItemName(id int) string {
	if name, ok := s.itemNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Item %d", id)
}

// SpellName returns the summoner spell name for a given ID
func (s *Static) SpellName(id int) string {
	if name, ok := s.spells[id]; ok {
		return name
	}
	return fmt.Sprintf("Spell %d", id)
}

// Tree returns the rune tree with the given style id.
func (s *Static) Tree(id int) (RuneTree, bool) {
	t, ok := s.trees[id]
	return t, ok
}

// SortRunes orders runes by their position in the primary tree, then by
// their position in the secondary tree. Ids in neither tree are dropped and
// each id appears at most once.
func (s *Static) SortRunes(runes []int, primary, secondary int) []int {
	present := make(map[int]bool, len(runes))
	for _, r := range runes {
		present[r] = true
	}

	var out []int
	for _, style := range []int{primary, secondary} {
		tree, ok := s.trees[style]
		if !ok {
			continue
		}
		for _, r := range tree.Runes {
			if present[r] {
				out = append(out, r)
				present[r] = false
			}
		}
	}
	return out
}

func normalizeName(name string) string {
	folded := cases.Fold().String(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, folded)
}
