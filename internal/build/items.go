package build

import "strconv"

// ItemBlock is one labelled row of an item set.
type ItemBlock struct {
	Label string
	Items []int
}

// PreferredSlot pins an item to an inventory slot (1-6).
type PreferredSlot struct {
	ItemID int
	Slot   int
}

// ItemSet is a recommended item set for one champion and role.
type ItemSet struct {
	Title          string
	ChampionID     int
	Blocks         []ItemBlock
	PreferredSlots []PreferredSlot
}

type ItemSetPayload struct {
	AssociatedChampions []int                  `json:"associatedChampions"`
	AssociatedMaps      []int                  `json:"associatedMaps"`
	Blocks              []ItemBlockPayload     `json:"blocks"`
	Map                 string                 `json:"map"`
	Mode                string                 `json:"mode"`
	PreferredItemSlots  []PreferredSlotPayload `json:"preferredItemSlots"`
	Sortrank            int                    `json:"sortrank"`
	StartedFrom         string                 `json:"startedFrom"`
	Title               string                 `json:"title"`
	Type                string                 `json:"type"`
}

type ItemBlockPayload struct {
	HideIfSummonerSpell string             `json:"hideIfSummonerSpell"`
	Items               []ItemEntryPayload `json:"items"`
	ShowIfSummonerSpell string             `json:"showIfSummonerSpell"`
	Type                string             `json:"type"`
}

type ItemEntryPayload struct {
	Count int    `json:"count"`
	ID    string `json:"id"`
}

type PreferredSlotPayload struct {
	ID                string `json:"id"`
	PreferredItemSlot int    `json:"preferredItemSlot"`
}

// Payload renders the set as an entry of the client's item set collection.
func (s ItemSet) Payload() ItemSetPayload {
	blocks := make([]ItemBlockPayload, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		items := make([]ItemEntryPayload, 0, len(b.Items))
		for _, id := range b.Items {
			items = append(items, ItemEntryPayload{Count: 1, ID: strconv.Itoa(id)})
		}
		blocks = append(blocks, ItemBlockPayload{Items: items, Type: b.Label})
	}

	slots := make([]PreferredSlotPayload, 0, len(s.PreferredSlots))
	for _, p := range s.PreferredSlots {
		slots = append(slots, PreferredSlotPayload{ID: strconv.Itoa(p.ItemID), PreferredItemSlot: p.Slot})
	}

	return ItemSetPayload{
		AssociatedChampions: []int{s.ChampionID},
		AssociatedMaps:      []int{},
		Blocks:              blocks,
		Map:                 "any",
		Mode:                "any",
		PreferredItemSlots:  slots,
		StartedFrom:         "blank",
		Title:               s.Title,
		Type:                "custom",
	}
}
