// Package build holds the artifacts written into the client: rune pages,
// item sets and summoner spell pairs, together with their wire payloads.
package build

// RunePage is a recommended rune page for one role.
type RunePage struct {
	Name         string
	PrimaryStyle int
	SubStyle     int
	// Runes holds sorted primary tree runes, sorted secondary tree runes,
	// then the three stat shards.
	Runes  []int
	Active bool
}

// RunePagePayload is the body POSTed to /lol-perks/v1/pages.
type RunePagePayload struct {
	AutoModifiedSelections []int  `json:"autoModifiedSelections"`
	Current                bool   `json:"current"`
	ID                     int    `json:"id"`
	IsActive               bool   `json:"isActive"`
	IsDeletable            bool   `json:"isDeletable"`
	IsEditable             bool   `json:"isEditable"`
	IsValid                bool   `json:"isValid"`
	LastModified           int64  `json:"lastModified"`
	Name                   string `json:"name"`
	Order                  int    `json:"order"`
	PrimaryStyleID         int    `json:"primaryStyleId"`
	SelectedPerkIDs        []int  `json:"selectedPerkIds"`
	SubStyleID             int    `json:"subStyleId"`
}

// Payload renders the page for the client.
func (p RunePage) Payload() RunePagePayload {
	perks := make([]int, len(p.Runes))
	copy(perks, p.Runes)
	return RunePagePayload{
		AutoModifiedSelections: []int{},
		Current:                p.Active,
		IsActive:               p.Active,
		IsDeletable:            true,
		IsEditable:             true,
		IsValid:                true,
		Name:                   p.Name,
		PrimaryStyleID:         p.PrimaryStyle,
		SelectedPerkIDs:        perks,
		SubStyleID:             p.SubStyle,
	}
}
