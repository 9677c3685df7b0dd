// Package datasource turns a statistics backend into rune pages, item sets,
// summoner spells and ability orders for one champion in one queue.
package datasource

import (
	"context"
	"errors"

	"runedraft/internal/build"
	"runedraft/internal/static"
)

var (
	// ErrNoData means the backend has no statistics for the request.
	ErrNoData = errors.New("no data")
	// ErrTransport means the backend could not be reached or answered with
	// something undecodable.
	ErrTransport = errors.New("transport error")
)

// DataSource is the capability set the reconciliation loop consumes.
type DataSource interface {
	Roles(ctx context.Context) ([]*static.Role, error)
	Runes(ctx context.Context, role *static.Role, active bool) (build.RunePage, error)
	Items(ctx context.Context, role *static.Role, title, firstAbilities, maxOrder string) (build.ItemSet, error)
	Summoners(ctx context.Context, role *static.Role) (build.SpellPair, error)
	Abilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error)
	FirstAbilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error)
	MaxOrder(ctx context.Context, role *static.Role) (static.AbilitySequence, error)
}

// Factory constructs a DataSource for a locked-in champion.
type Factory func(ctx context.Context, championID int, queue *static.Queue, assigned *static.Role) (DataSource, error)

// Options are the user preferences applied to every build.
type Options struct {
	FlashOnF       bool
	RevertPatch    bool
	SmallItems     []int
	PreferredSlots []build.PreferredSlot
}

// ItemGroup is one block of a backend's item recommendation.
type ItemGroup struct {
	Label string
	Items []int
	// WithMaxOrder appends the ability max order to the label.
	WithMaxOrder bool
}

// Build is a backend's recommendation for one role, normalized.
type Build struct {
	PrimaryStyle int
	SubStyle     int
	// Perks are the rune ids in backend order; ids outside the two trees
	// are ignored when sorting.
	Perks     []int
	Shards    []int
	Spells    build.SpellPair
	Abilities static.AbilitySequence
	MaxOrder  static.AbilitySequence
	Starting  []int
	Groups    []ItemGroup
}

// Snapshot is one patch's worth of backend data.
type Snapshot interface {
	// AvailableRoles lists the champion's roles in backend order.
	AvailableRoles(ctx context.Context) ([]*static.Role, error)
	// MatchCount is the number of matches recorded for the role.
	MatchCount(ctx context.Context, role *static.Role) (int, error)
}

// Provider is a Snapshot that can also produce builds.
type Provider interface {
	Snapshot
	Build(ctx context.Context, role *static.Role) (*Build, error)
}

// RuneSorter orders rune ids by tree position.
type RuneSorter interface {
	SortRunes(runes []int, primary, secondary int) []int
}
