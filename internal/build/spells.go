package build

import "runedraft/internal/static"

// SpellPair is the two summoner spells in D, F order.
type SpellPair [2]int

// Oriented returns the pair with Flash moved onto the preferred key:
// the second slot when flashOnF is set, the first slot otherwise.
func (p SpellPair) Oriented(flashOnF bool) SpellPair {
	if flashOnF && p[0] == static.FlashSpellID {
		return SpellPair{p[1], p[0]}
	}
	if !flashOnF && p[1] == static.FlashSpellID {
		return SpellPair{p[1], p[0]}
	}
	return p
}

// SpellSelection is the PATCH body for my-selection.
type SpellSelection struct {
	Spell1ID int `json:"spell1Id"`
	Spell2ID int `json:"spell2Id"`
}

func (p SpellPair) Payload() SpellSelection {
	return SpellSelection{Spell1ID: p[0], Spell2ID: p[1]}
}
