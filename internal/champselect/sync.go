package champselect

import (
	"context"
	"fmt"

	"runedraft/internal/datasource"
	"runedraft/internal/feed"
	"runedraft/internal/static"
)

// syncRunePages replaces the generated rune pages with one page per role
// and selects the page for the assigned role, or the first role when none
// is assigned.
func (r *Reconciler) syncRunePages(ctx context.Context, ds datasource.DataSource, assigned *static.Role) error {
	pages, err := r.client.RunePages(ctx)
	if err != nil {
		return err
	}
	deleted := 0
	for _, page := range pages {
		if !page.IsEditable || !static.IsGeneratedRunePage(page.Name) {
			continue
		}
		if err := r.client.DeleteRunePage(ctx, page.ID); err != nil {
			return err
		}
		deleted++
	}

	roles, err := ds.Roles(ctx)
	if err != nil {
		return err
	}

	var activeID int64
	var hasActive bool
	names := make([]string, 0, len(roles))
	for i, role := range roles {
		active := role == assigned || (assigned == nil && i == 0)
		page, err := ds.Runes(ctx, role, active)
		if err != nil {
			return err
		}
		if err := r.client.CreateRunePage(ctx, page.Payload()); err != nil {
			return err
		}
		names = append(names, page.Name)

		if active {
			current, err := r.client.CurrentRunePage(ctx)
			if err != nil {
				return err
			}
			activeID, hasActive = current.ID, true
		}
	}

	if hasActive {
		if err := r.client.SetCurrentRunePage(ctx, activeID); err != nil {
			return err
		}
	}

	r.log.InfoW("built rune pages", "deleted", deleted, "created", len(names))
	r.emit.Emit(feed.EventRunes, map[string]any{"pages": names})
	return nil
}

// syncItemSet replaces the generated item sets with the set for role.
func (r *Reconciler) syncItemSet(ctx context.Context, ds datasource.DataSource, championID int, champion string, role *static.Role) error {
	sets, err := r.client.ItemSets(ctx)
	if err != nil {
		return err
	}

	first, err := ds.FirstAbilities(ctx, role)
	if err != nil {
		return err
	}
	maxOrder, err := ds.MaxOrder(ctx, role)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s", champion, role.ShortName)
	set, err := ds.Items(ctx, role, title, first.String(), maxOrder.String())
	if err != nil {
		return err
	}

	updated, err := sets.Rebuild(static.IsGeneratedItemSet, set.Payload())
	if err != nil {
		return err
	}
	if err := r.client.ReplaceItemSets(ctx, updated); err != nil {
		return err
	}

	r.log.InfoW("built item set", "title", title, "start", first.String(), "max", maxOrder.String())
	r.emit.Emit(feed.EventItems, map[string]any{
		"championId": championID,
		"title":      title,
		"start":      first.String(),
		"max":        maxOrder.String(),
	})
	return nil
}

func (r *Reconciler) syncSpells(ctx context.Context, ds datasource.DataSource, role *static.Role) error {
	spells, err := ds.Summoners(ctx, role)
	if err != nil {
		return err
	}
	if err := r.client.SetSummonerSpells(ctx, spells); err != nil {
		return err
	}
	r.log.InfoW("set summoner spells", "spell1", spells[0], "spell2", spells[1])
	r.emit.Emit(feed.EventSpells, map[string]any{"spell1Id": spells[0], "spell2Id": spells[1]})
	return nil
}
