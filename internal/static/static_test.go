package static

import (
	"testing"
)

func TestFirstAbilities(t *testing.T) {
	tests := []struct {
		name string
		seq  AbilitySequence
		want string
	}{
		{name: "all basics early", seq: AbilitySequence{Q, W, E, Q, Q, R}, want: "QWE"},
		{name: "repeat before covering", seq: AbilitySequence{Q, W, Q, E, Q, R}, want: "QWQE"},
		{name: "never covered", seq: AbilitySequence{Q, Q, W, R}, want: "QQWR"},
		{name: "empty", seq: AbilitySequence{}, want: ""},
		{name: "ult in prefix", seq: AbilitySequence{E, R, W, Q, E}, want: "ERWQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seq.FirstAbilities().String(); got != tt.want {
				t.Errorf("Expected %q, got: %q", tt.want, got)
			}
		})
	}
}

func TestAbilityForNumber(t *testing.T) {
	for n, want := range map[int]Ability{1: Q, 2: W, 3: E, 4: R} {
		got, ok := AbilityForNumber(n)
		if !ok || got != want {
			t.Errorf("AbilityForNumber(%d) = %q, %v", n, got, ok)
		}
	}
	if _, ok := AbilityForNumber(5); ok {
		t.Error("Expected 5 to be rejected")
	}
	if _, ok := AbilityForKey("X"); ok {
		t.Error("Expected X to be rejected")
	}
}

func TestQueueLookups(t *testing.T) {
	q, ok := QueueByLCUName("Howling Abyss")
	if !ok || q != HowlingAbyss {
		t.Fatalf("Expected Howling Abyss, got: %v", q)
	}
	if _, ok := QueueByLCUName("Twisted Treeline"); ok {
		t.Error("Expected unknown map to be rejected")
	}
	if DefaultQueue() != SummonersRift {
		t.Error("Expected Summoner's Rift as default queue")
	}

	if got := SummonersRift.RoleByLCUName("utility"); got != Support {
		t.Errorf("Expected Support, got: %v", got)
	}
	if got := SummonersRift.RoleByUGGName("mid"); got != Middle {
		t.Errorf("Expected Middle, got: %v", got)
	}
	if got := SummonersRift.RoleByMobalyticsName("JUNGLE"); got != Jungle {
		t.Errorf("Expected Jungle, got: %v", got)
	}
	if got := SummonersRift.RoleByLCUName(""); got != nil {
		t.Errorf("Expected no role for empty name, got: %v", got)
	}
	if got := NexusBlitzQueue.RoleByMobalyticsName(""); got != nil {
		t.Errorf("Expected no role for empty name, got: %v", got)
	}
}

func TestRoleByDisplayName(t *testing.T) {
	if got := RoleByDisplayName("Nexus Blitz"); got != NexusBlitz {
		t.Errorf("Expected Nexus Blitz, got: %v", got)
	}
	if got := RoleByDisplayName("middle"); got != nil {
		t.Errorf("Expected exact match only, got: %v", got)
	}
}

func TestGeneratedArtifactNames(t *testing.T) {
	pages := map[string]bool{
		"Ahri Middle":   true,
		"Ahri ARAM":     true,
		"My Page":       false,
		"Nexus Blitz 1": true,
	}
	for name, want := range pages {
		if got := IsGeneratedRunePage(name); got != want {
			t.Errorf("IsGeneratedRunePage(%q) = %v", name, got)
		}
	}

	titles := map[string]bool{
		"Ahri Mid":    true,
		"Lee Sin JG":  true,
		"Mid Ahri":    false,
		"Teemo NB":    true,
		"Custom Tank": false,
	}
	for title, want := range titles {
		if got := IsGeneratedItemSet(title); got != want {
			t.Errorf("IsGeneratedItemSet(%q) = %v", title, got)
		}
	}
}

func TestMoveToFront(t *testing.T) {
	roles := []*Role{Middle, Top, Support}

	got := MoveToFront(roles, Support)
	want := []*Role{Support, Middle, Top}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got: %v", want, got)
		}
	}
	if roles[0] != Middle {
		t.Error("Expected input slice to be untouched")
	}

	got = MoveToFront(roles, Jungle)
	for i := range roles {
		if got[i] != roles[i] {
			t.Fatalf("Expected unchanged order, got: %v", got)
		}
	}

	if got := MoveToFront(roles, nil); len(got) != 3 || got[0] != Middle {
		t.Errorf("Expected unchanged order for nil role, got: %v", got)
	}
}

func TestIntersectRoles(t *testing.T) {
	got := IntersectRoles([]*Role{Top, Middle, ADC}, []*Role{ADC, Top})
	if len(got) != 2 || got[0] != Top || got[1] != ADC {
		t.Errorf("Expected [Top ADC], got: %v", got)
	}
}
