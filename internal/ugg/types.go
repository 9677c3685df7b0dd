package ugg

import (
	"runedraft/internal/build"
	"runedraft/internal/static"
)

// Region, rank and role ids used as keys in U.GG stats documents.
var (
	Regions = map[string]string{
		"na1":   "1",
		"euw1":  "2",
		"kr":    "3",
		"eun1":  "4",
		"br1":   "5",
		"la1":   "6",
		"la2":   "7",
		"oc1":   "8",
		"ru":    "9",
		"tr1":   "10",
		"jp1":   "11",
		"world": "12",
	}
	Ranks = map[string]string{
		"challenger":     "1",
		"master":         "2",
		"diamond":        "3",
		"platinum":       "4",
		"gold":           "5",
		"silver":         "6",
		"bronze":         "7",
		"overall":        "8",
		"platinum_plus":  "10",
		"diamond_plus":   "11",
		"iron":           "12",
		"grandmaster":    "13",
		"master_plus":    "14",
		"diamond_2_plus": "15",
	}
	Roles = map[string]string{
		"top":    "4",
		"jungle": "1",
		"mid":    "5",
		"adc":    "3",
		"supp":   "2",
		"none":   "6",
	}
)

// roleForID converts a U.GG role number to its role name
func roleForID(id string) string {
	for name, rid := range Roles {
		if rid == id {
			return name
		}
	}
	return ""
}

// ItemOption holds an item with its wins and games
type ItemOption struct {
	ItemID  int
	Wins    int
	Matches int
}

// Overview is the overview entry of one region, rank and role.
type Overview struct {
	Matches       int
	Wins          int
	PrimaryStyle  int
	SubStyle      int
	Runes         []int
	Shards        []int
	Spells        build.SpellPair
	StartingItems []int
	CoreItems     []int
	AbilityOrder  static.AbilitySequence
	MaxOrder      static.AbilitySequence
	// ItemOptions holds the 4th, 5th and 6th item choices.
	ItemOptions [3][]ItemOption
}

// Rankings is the rankings entry of one region, rank and role.
type Rankings struct {
	Wins    int
	Matches int
}
