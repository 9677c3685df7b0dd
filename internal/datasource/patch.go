package datasource

import (
	"context"
	"errors"
	"fmt"

	"runedraft/internal/ddragon"
	"runedraft/internal/logger"
	"runedraft/internal/static"
)

// Opener fetches one patch's snapshot for a champion.
type Opener[P Provider] func(ctx context.Context, championID int, queue *static.Queue, patch ddragon.Patch) (P, error)

// SelectPatch decides between the current and previous patch. The previous
// patch is used when the current one has no data, or, with revert enabled,
// when the current patch has at most MinPatchMatchRatio of the previous
// patch's matches over the roles both patches share.
func SelectPatch[S Snapshot](
	ctx context.Context,
	log logger.Logger,
	revert bool,
	current, previous func(context.Context) (S, error),
) (S, error) {
	var zero S

	cur, err := current(ctx)
	if errors.Is(err, ErrNoData) {
		log.InfoW("no data on current patch, reverting to previous patch", "reason", err)
		return previous(ctx)
	}
	if err != nil {
		return zero, err
	}
	if !revert {
		return cur, nil
	}

	prev, err := previous(ctx)
	if errors.Is(err, ErrNoData) {
		log.InfoW("no data on previous patch, using current patch", "reason", err)
		return cur, nil
	}
	if err != nil {
		return zero, err
	}

	curRoles, err := cur.AvailableRoles(ctx)
	if err != nil {
		return zero, err
	}
	prevRoles, err := prev.AvailableRoles(ctx)
	if err != nil {
		return zero, err
	}

	var curMatches, prevMatches int
	for _, role := range static.IntersectRoles(curRoles, prevRoles) {
		n, err := matchCount(ctx, cur, role)
		if err != nil {
			return zero, err
		}
		curMatches += n
		if n, err = matchCount(ctx, prev, role); err != nil {
			return zero, err
		}
		prevMatches += n
	}

	if prevMatches == 0 {
		log.InfoW("no matches on previous patch, using current patch", "current_matches", curMatches)
		return cur, nil
	}

	ratio := float64(curMatches) / float64(prevMatches)
	fields := []any{
		"current_matches", curMatches,
		"previous_matches", prevMatches,
		"ratio", fmt.Sprintf("%.2f", ratio),
	}
	if ratio > static.MinPatchMatchRatio {
		log.InfoW("using current patch", fields...)
		return cur, nil
	}
	log.InfoW("reverting to previous patch", fields...)
	return prev, nil
}

// matchCount treats a role without data as zero matches.
func matchCount(ctx context.Context, s Snapshot, role *static.Role) (int, error) {
	n, err := s.MatchCount(ctx, role)
	if errors.Is(err, ErrNoData) {
		return 0, nil
	}
	return n, err
}

// FactoryParams wires a backend into a Factory.
type FactoryParams struct {
	Static  *ddragon.Static
	Options Options
	Logger  logger.Logger
}

// NewFactory returns a Factory that selects a patch with open and wraps the
// chosen snapshot in a Source.
func NewFactory[P Provider](p FactoryParams, open Opener[P]) Factory {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return func(ctx context.Context, championID int, queue *static.Queue, assigned *static.Role) (DataSource, error) {
		provider, err := SelectPatch(ctx, log, p.Options.RevertPatch,
			func(ctx context.Context) (P, error) {
				return open(ctx, championID, queue, p.Static.Current)
			},
			func(ctx context.Context) (P, error) {
				return open(ctx, championID, queue, p.Static.Previous)
			},
		)
		if err != nil {
			return nil, err
		}
		return NewSource(SourceParams{
			ChampionID: championID,
			Queue:      queue,
			Assigned:   assigned,
			Provider:   provider,
			Runes:      p.Static,
			Options:    p.Options,
		}), nil
	}
}
