package ugg

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"runedraft/internal/build"
	"runedraft/internal/datasource"
	"runedraft/internal/static"
)

// Fetcher holds one champion's U.GG documents for one patch and queue.
type Fetcher struct {
	championID   int
	queue        *static.Queue
	patch        string
	primaryRoles gjson.Result
	overview     gjson.Result
	rankings     gjson.Result

	overviews datasource.Memo[lookupKey, *Overview]
	ranks     datasource.Memo[lookupKey, *Rankings]
	roles     datasource.Memo[struct{}, []*static.Role]
}

type lookupKey struct {
	region string
	role   *static.Role
}

var _ datasource.Provider = (*Fetcher)(nil)

// Patch returns the underscored patch this fetcher reads.
func (f *Fetcher) Patch() string { return f.patch }

// AvailableRoles returns the champion's primary roles on Summoner's Rift,
// and the queue's roles elsewhere.
func (f *Fetcher) AvailableRoles(ctx context.Context) ([]*static.Role, error) {
	return f.roles.Get(struct{}{}, func() ([]*static.Role, error) {
		if f.queue != static.SummonersRift {
			return f.queue.Roles, nil
		}
		var roles []*static.Role
		for _, n := range f.primaryRoles.Array() {
			if role := f.queue.RoleByUGGName(roleForID(n.String())); role != nil {
				roles = append(roles, role)
			}
		}
		return roles, nil
	})
}

// path builds the gjson path of a region, rank and role entry.
func (f *Fetcher) path(region string, role *static.Role) (string, error) {
	regionID, ok := Regions[region]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}
	rankID, ok := Ranks[f.queue.Rank]
	if !ok {
		return "", fmt.Errorf("unknown rank %q", f.queue.Rank)
	}
	roleID, ok := Roles[role.UGGName]
	if !ok {
		return "", fmt.Errorf("unknown role %q", role.UGGName)
	}
	return regionID + "." + rankID + "." + roleID, nil
}

func (f *Fetcher) noData(what, region string, role *static.Role) error {
	return fmt.Errorf("%w: no %s for champion=%d region=%s queue=%s rank=%s role=%s patch=%s",
		datasource.ErrNoData, what, f.championID, region, f.queue, f.queue.Rank, role, f.patch)
}

// Overview returns the overview entry of a region and role.
func (f *Fetcher) Overview(region string, role *static.Role) (*Overview, error) {
	return f.overviews.Get(lookupKey{region, role}, func() (*Overview, error) {
		path, err := f.path(region, role)
		if err != nil {
			return nil, err
		}
		data := f.overview.Get(path + ".0")
		if !data.IsArray() {
			return nil, f.noData("overview", region, role)
		}
		o, ok := parseOverview(data)
		if !ok {
			return nil, f.noData("complete overview", region, role)
		}
		return o, nil
	})
}

// Rankings returns the rankings entry of a region and role.
func (f *Fetcher) Rankings(region string, role *static.Role) (*Rankings, error) {
	return f.ranks.Get(lookupKey{region, role}, func() (*Rankings, error) {
		path, err := f.path(region, role)
		if err != nil {
			return nil, err
		}
		data := f.rankings.Get(path)
		if !data.IsArray() || !data.Get("1").Exists() {
			return nil, f.noData("rankings", region, role)
		}
		return &Rankings{
			Wins:    int(data.Get("0").Int()),
			Matches: int(data.Get("1").Int()),
		}, nil
	})
}

// MatchCount returns the world rankings match count.
func (f *Fetcher) MatchCount(ctx context.Context, role *static.Role) (int, error) {
	r, err := f.Rankings(static.DefaultRegion, role)
	if err != nil {
		return 0, err
	}
	return r.Matches, nil
}

// Build returns the world overview as a normalized build.
func (f *Fetcher) Build(ctx context.Context, role *static.Role) (*datasource.Build, error) {
	o, err := f.Overview(static.DefaultRegion, role)
	if err != nil {
		return nil, err
	}

	groups := []datasource.ItemGroup{{Label: "Core Items", Items: o.CoreItems, WithMaxOrder: true}}
	for i, label := range []string{"Item 4 Options", "Item 5 Options", "Item 6 Options"} {
		items := make([]int, 0, len(o.ItemOptions[i]))
		for _, opt := range o.ItemOptions[i] {
			items = append(items, opt.ItemID)
		}
		groups = append(groups, datasource.ItemGroup{Label: label, Items: items})
	}

	return &datasource.Build{
		PrimaryStyle: o.PrimaryStyle,
		SubStyle:     o.SubStyle,
		Perks:        o.Runes,
		Shards:       o.Shards,
		Spells:       o.Spells,
		Abilities:    o.AbilityOrder,
		MaxOrder:     o.MaxOrder,
		Starting:     o.StartingItems,
		Groups:       groups,
	}, nil
}

// parseOverview reads an overview entry:
// [runes, spells, starting, core, abilities, options, totals, warning, shards].
func parseOverview(data gjson.Result) (*Overview, bool) {
	runes := data.Get("0")
	spells := data.Get("1.2").Array()
	shards := data.Get("8.2").Array()
	if !runes.Get("4").IsArray() || len(spells) != 2 || len(shards) != 3 {
		return nil, false
	}

	o := &Overview{
		Matches:       int(data.Get("6.1").Int()),
		Wins:          int(data.Get("6.0").Int()),
		PrimaryStyle:  int(runes.Get("2").Int()),
		SubStyle:      int(runes.Get("3").Int()),
		Runes:         ints(runes.Get("4")),
		Spells:        build.SpellPair{int(spells[0].Int()), int(spells[1].Int())},
		StartingItems: ints(data.Get("2.2")),
		CoreItems:     ints(data.Get("3.2")),
	}
	for _, s := range shards {
		o.Shards = append(o.Shards, int(s.Int()))
	}

	for _, key := range data.Get("4.2").Array() {
		if a, ok := static.AbilityForKey(key.String()); ok {
			o.AbilityOrder = append(o.AbilityOrder, a)
		}
	}
	for _, r := range data.Get("4.3").String() {
		if a, ok := static.AbilityForKey(string(r)); ok {
			o.MaxOrder = append(o.MaxOrder, a)
		}
	}

	for i := range o.ItemOptions {
		for _, opt := range data.Get(fmt.Sprintf("5.%d", i)).Array() {
			o.ItemOptions[i] = append(o.ItemOptions[i], ItemOption{
				ItemID:  int(opt.Get("0").Int()),
				Wins:    int(opt.Get("1").Int()),
				Matches: int(opt.Get("2").Int()),
			})
		}
	}
	return o, true
}

func ints(r gjson.Result) []int {
	arr := r.Array()
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v.Int()))
	}
	return out
}
