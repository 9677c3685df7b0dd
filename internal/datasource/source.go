package datasource

import (
	"context"
	"fmt"

	"runedraft/internal/build"
	"runedraft/internal/static"
)

const maxOrderSeparator = ",                    Max: "

// SourceParams configures a Source.
type SourceParams struct {
	ChampionID int
	Queue      *static.Queue
	Assigned   *static.Role
	Provider   Provider
	Runes      RuneSorter
	Options    Options
}

// Source implements DataSource on top of a Provider.
type Source struct {
	championID int
	queue      *static.Queue
	assigned   *static.Role
	provider   Provider
	runes      RuneSorter
	opts       Options

	roles  Memo[struct{}, []*static.Role]
	builds Memo[*static.Role, *Build]
}

var _ DataSource = (*Source)(nil)

// NewSource creates a Source
func NewSource(p SourceParams) *Source {
	return &Source{
		championID: p.ChampionID,
		queue:      p.Queue,
		assigned:   p.Assigned,
		provider:   p.Provider,
		runes:      p.Runes,
		opts:       p.Options,
	}
}

// Roles returns the queue's roles outside Summoner's Rift; otherwise the
// backend's roles with the assigned role first when the backend lists it.
func (s *Source) Roles(ctx context.Context) ([]*static.Role, error) {
	roles, err := s.roles.Get(struct{}{}, func() ([]*static.Role, error) {
		if s.queue != static.SummonersRift {
			return s.queue.Roles, nil
		}
		available, err := s.provider.AvailableRoles(ctx)
		if err != nil {
			return nil, err
		}
		return static.MoveToFront(available, s.assigned), nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*static.Role, len(roles))
	copy(out, roles)
	return out, nil
}

func (s *Source) build(ctx context.Context, role *static.Role) (*Build, error) {
	return s.builds.Get(role, func() (*Build, error) {
		return s.provider.Build(ctx, role)
	})
}

// Runes returns the rune page named after the role.
func (s *Source) Runes(ctx context.Context, role *static.Role, active bool) (build.RunePage, error) {
	b, err := s.build(ctx, role)
	if err != nil {
		return build.RunePage{}, err
	}

	runes := s.runes.SortRunes(b.Perks, b.PrimaryStyle, b.SubStyle)
	runes = append(runes, b.Shards...)

	return build.RunePage{
		Name:         role.DisplayName,
		PrimaryStyle: b.PrimaryStyle,
		SubStyle:     b.SubStyle,
		Runes:        runes,
		Active:       active,
	}, nil
}

// Items returns the item set for the role.
func (s *Source) Items(ctx context.Context, role *static.Role, title, firstAbilities, maxOrder string) (build.ItemSet, error) {
	b, err := s.build(ctx, role)
	if err != nil {
		return build.ItemSet{}, err
	}

	starting := make([]int, 0, len(b.Starting)+len(s.opts.SmallItems))
	starting = append(starting, b.Starting...)
	starting = append(starting, s.opts.SmallItems...)

	blocks := []build.ItemBlock{{
		Label: fmt.Sprintf("Starting/Small Items, Start: %s", firstAbilities),
		Items: starting,
	}}
	for _, g := range b.Groups {
		label := g.Label
		if g.WithMaxOrder {
			label += maxOrderSeparator + maxOrder
		}
		blocks = append(blocks, build.ItemBlock{Label: label, Items: g.Items})
	}

	slots := make([]build.PreferredSlot, len(s.opts.PreferredSlots))
	copy(slots, s.opts.PreferredSlots)

	return build.ItemSet{
		Title:          title,
		ChampionID:     s.championID,
		Blocks:         blocks,
		PreferredSlots: slots,
	}, nil
}

// Summoners returns the spell pair with Flash on the configured key.
func (s *Source) Summoners(ctx context.Context, role *static.Role) (build.SpellPair, error) {
	b, err := s.build(ctx, role)
	if err != nil {
		return build.SpellPair{}, err
	}
	return b.Spells.Oriented(s.opts.FlashOnF), nil
}

// Abilities returns the full skill order.
func (s *Source) Abilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	b, err := s.build(ctx, role)
	if err != nil {
		return nil, err
	}
	return b.Abilities, nil
}

// FirstAbilities returns the skill order up to the point every basic
// ability has been taken once.
func (s *Source) FirstAbilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	abilities, err := s.Abilities(ctx, role)
	if err != nil {
		return nil, err
	}
	return abilities.FirstAbilities(), nil
}

// MaxOrder returns the ability max priority.
func (s *Source) MaxOrder(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	b, err := s.build(ctx, role)
	if err != nil {
		return nil, err
	}
	return b.MaxOrder, nil
}
