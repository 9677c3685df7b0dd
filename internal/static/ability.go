package static

import "strings"

// Ability is one of the four ability slots, identified by its key.
type Ability string

const (
	Q Ability = "Q"
	W Ability = "W"
	E Ability = "E"
	R Ability = "R"
)

var (
	Abilities      = []Ability{Q, W, E, R}
	BasicAbilities = []Ability{Q, W, E}
)

// AbilityForKey resolves a key letter.
func AbilityForKey(key string) (Ability, bool) {
	for _, a := range Abilities {
		if string(a) == key {
			return a, true
		}
	}
	return "", false
}

// AbilityForNumber resolves Mobalytics' 1-based ability numbering.
func AbilityForNumber(n int) (Ability, bool) {
	if n < 1 || n > len(Abilities) {
		return "", false
	}
	return Abilities[n-1], true
}

// AbilitySequence is a skill order or a max-priority order.
type AbilitySequence []Ability

// String concatenates the keys, e.g. "QWE".
func (s AbilitySequence) String() string {
	var b strings.Builder
	for _, a := range s {
		b.WriteString(string(a))
	}
	return b.String()
}

// FirstAbilities returns the shortest prefix that contains every basic
// ability at least once. The whole sequence is returned if it never does.
func (s AbilitySequence) FirstAbilities() AbilitySequence {
	seen := make(map[Ability]bool, len(BasicAbilities))
	out := AbilitySequence{}
	for _, a := range s {
		if coversBasics(seen) {
			break
		}
		out = append(out, a)
		seen[a] = true
	}
	return out
}

func coversBasics(seen map[Ability]bool) bool {
	for _, a := range BasicAbilities {
		if !seen[a] {
			return false
		}
	}
	return true
}
