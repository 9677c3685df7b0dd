// Package static holds the immutable lookup tables shared by every other
// package: queues, roles, abilities and gameflow phases.
package static

import "strings"

// Role is a lane/position within one queue, named in every vocabulary the
// tool talks to.
type Role struct {
	DisplayName    string // rune page name
	ShortName      string // item set title suffix
	LCUName        string
	UGGName        string
	MobalyticsName string
}

func (r *Role) String() string {
	if r == nil {
		return "<none>"
	}
	return r.DisplayName
}

// Queue is a game mode with its backend names, rank filter and valid roles.
type Queue struct {
	LCUName        string
	UGGName        string
	MobalyticsName string
	Rank           string
	Roles          []*Role
}

func (q *Queue) String() string { return q.LCUName }

// RoleByLCUName returns the queue's role with the given client name.
func (q *Queue) RoleByLCUName(name string) *Role {
	return q.find(func(r *Role) string { return r.LCUName }, name)
}

// RoleByUGGName returns the queue's role with the given U.GG name.
func (q *Queue) RoleByUGGName(name string) *Role {
	return q.find(func(r *Role) string { return r.UGGName }, name)
}

// RoleByMobalyticsName returns the queue's role with the given Mobalytics name.
func (q *Queue) RoleByMobalyticsName(name string) *Role {
	return q.find(func(r *Role) string { return r.MobalyticsName }, name)
}

func (q *Queue) find(field func(*Role) string, name string) *Role {
	if name == "" {
		return nil
	}
	for _, r := range q.Roles {
		if field(r) == name {
			return r
		}
	}
	return nil
}

var (
	Top     = &Role{DisplayName: "Top", ShortName: "Top", LCUName: "top", UGGName: "top", MobalyticsName: "TOP"}
	Jungle  = &Role{DisplayName: "Jungle", ShortName: "JG", LCUName: "jungle", UGGName: "jungle", MobalyticsName: "JUNGLE"}
	Middle  = &Role{DisplayName: "Middle", ShortName: "Mid", LCUName: "middle", UGGName: "mid", MobalyticsName: "MID"}
	ADC     = &Role{DisplayName: "ADC", ShortName: "ADC", LCUName: "bottom", UGGName: "adc", MobalyticsName: "ADC"}
	Support = &Role{DisplayName: "Support", ShortName: "Sup", LCUName: "utility", UGGName: "supp", MobalyticsName: "SUPPORT"}

	ARAM       = &Role{DisplayName: "ARAM", ShortName: "ARAM", UGGName: "none", MobalyticsName: "MID"}
	NexusBlitz = &Role{DisplayName: "Nexus Blitz", ShortName: "NB", UGGName: "none"}
)

var (
	SummonersRift = &Queue{
		LCUName:        "Summoner's Rift",
		UGGName:        "ranked_solo_5x5",
		MobalyticsName: "RANKED_SOLO",
		Rank:           "platinum_plus",
		Roles:          []*Role{Top, Jungle, Middle, ADC, Support},
	}
	HowlingAbyss = &Queue{
		LCUName:        "Howling Abyss",
		UGGName:        "normal_aram",
		MobalyticsName: "ARAM",
		Rank:           "overall",
		Roles:          []*Role{ARAM},
	}
	NexusBlitzQueue = &Queue{
		LCUName: "Nexus Blitz",
		UGGName: "nexus_blitz",
		Rank:    "overall",
		Roles:   []*Role{NexusBlitz},
	}
)

// Queues lists every supported queue; the first one is the default.
var Queues = []*Queue{SummonersRift, HowlingAbyss, NexusBlitzQueue}

// AllRoles is every role of every queue, in queue order.
var AllRoles = func() []*Role {
	var roles []*Role
	for _, q := range Queues {
		roles = append(roles, q.Roles...)
	}
	return roles
}()

// DefaultQueue is used when the client reports a map we do not know.
func DefaultQueue() *Queue { return SummonersRift }

// QueueByLCUName returns the queue for a client map name.
func QueueByLCUName(name string) (*Queue, bool) {
	for _, q := range Queues {
		if q.LCUName == name {
			return q, true
		}
	}
	return nil, false
}

// RoleByDisplayName returns the role whose display name equals name exactly.
func RoleByDisplayName(name string) *Role {
	for _, r := range AllRoles {
		if r.DisplayName == name {
			return r
		}
	}
	return nil
}

// IsGeneratedRunePage reports whether a rune page name carries one of our
// role display names.
func IsGeneratedRunePage(name string) bool {
	for _, r := range AllRoles {
		if strings.Contains(name, r.DisplayName) {
			return true
		}
	}
	return false
}

// IsGeneratedItemSet reports whether an item set title ends with one of our
// short role names.
func IsGeneratedItemSet(title string) bool {
	for _, r := range AllRoles {
		if strings.HasSuffix(title, r.ShortName) {
			return true
		}
	}
	return false
}

// MoveToFront returns a copy of roles with role first. The order is
// unchanged when role is nil or absent.
func MoveToFront(roles []*Role, role *Role) []*Role {
	out := make([]*Role, 0, len(roles))
	idx := -1
	for i, r := range roles {
		if r == role {
			idx = i
			break
		}
	}
	if role == nil || idx < 0 {
		return append(out, roles...)
	}
	out = append(out, role)
	out = append(out, roles[:idx]...)
	return append(out, roles[idx+1:]...)
}

// IntersectRoles returns the roles present in both lists, in a's order.
func IntersectRoles(a, b []*Role) []*Role {
	var out []*Role
	for _, r := range a {
		for _, o := range b {
			if r == o {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
