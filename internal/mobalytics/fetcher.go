package mobalytics

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"runedraft/internal/build"
	"runedraft/internal/datasource"
	"runedraft/internal/static"
)

// Fetcher holds one champion's Mobalytics data for one patch and queue.
type Fetcher struct {
	client     *Client
	championID int
	slug       string
	queue      *static.Queue
	patch      string
	initial    gjson.Result

	queries datasource.Memo[queryKey, gjson.Result]
	builds  datasource.Memo[lookupKey, *ChampionBuild]
	roles   datasource.Memo[struct{}, []*static.Role]
}

type lookupKey struct {
	region string
	role   *static.Role
}

var _ datasource.Provider = (*Fetcher)(nil)

// ChampionBuild is the most popular build of one region and role.
type ChampionBuild struct {
	PrimaryStyle     int
	SubStyle         int
	Perks            []int
	Spells           build.SpellPair
	StartingItems    []int
	EarlyItems       []int
	CoreItems        []int
	SituationalItems []int
	FullBuildItems   []int
	AbilityOrder     static.AbilitySequence
	MaxOrder         static.AbilitySequence
	Matches          int
	Wins             int
}

// Shards returns the last three perks.
func (b *ChampionBuild) Shards() []int {
	return b.Perks[len(b.Perks)-3:]
}

func (f *Fetcher) query(ctx context.Context, key queryKey) (gjson.Result, error) {
	return f.queries.Get(key, func() (gjson.Result, error) {
		return f.client.post(ctx, newRequest(f.slug, f.queue.MobalyticsName, f.queue.Rank, f.patch, key))
	})
}

func (f *Fetcher) noData(what string, role *static.Role) error {
	return fmt.Errorf("%w: no %s for champion=%s queue=%s rank=%s role=%s patch=%s",
		datasource.ErrNoData, what, f.slug, f.queue, f.queue.Rank, role, f.patch)
}

// PrimaryRoles returns the champion's roles from the initial query.
func (f *Fetcher) PrimaryRoles() ([]*static.Role, error) {
	for _, champ := range f.initial.Get("championRoles.champions").Array() {
		if int(champ.Get("id").Int()) != f.championID {
			continue
		}
		var roles []*static.Role
		for _, name := range champ.Get("roles").Array() {
			if role := static.SummonersRift.RoleByMobalyticsName(name.String()); role != nil {
				roles = append(roles, role)
			}
		}
		return roles, nil
	}
	return nil, f.noData("roles", nil)
}

// AvailableRoles returns the champion's primary roles on Summoner's Rift,
// and the queue's roles elsewhere.
func (f *Fetcher) AvailableRoles(ctx context.Context) ([]*static.Role, error) {
	return f.roles.Get(struct{}{}, func() ([]*static.Role, error) {
		if f.queue != static.SummonersRift {
			return f.queue.Roles, nil
		}
		return f.PrimaryRoles()
	})
}

// ChampionBuild resolves the most popular build option of a role and
// fetches it.
func (f *Fetcher) ChampionBuild(ctx context.Context, region string, role *static.Role) (*ChampionBuild, error) {
	return f.builds.Get(lookupKey{region, role}, func() (*ChampionBuild, error) {
		inRole, err := f.query(ctx, queryKey{role: role.MobalyticsName, region: region})
		if err != nil {
			return nil, err
		}

		var buildID string
		for _, opt := range inRole.Get("builds.buildsOptions.options").Array() {
			if opt.Get("type").String() == "MOST_POPULAR" {
				buildID = opt.Get("id").String()
				break
			}
		}
		if buildID == "" {
			return nil, f.noData("most popular build", role)
		}

		selected, err := f.query(ctx, queryKey{buildID: buildID, role: role.MobalyticsName, region: region})
		if err != nil {
			return nil, err
		}
		b, ok := parseBuild(selected.Get("selectedBuild.build"))
		if !ok {
			return nil, f.noData("complete build", role)
		}
		return b, nil
	})
}

// MatchCount returns the world match count of the most popular build.
func (f *Fetcher) MatchCount(ctx context.Context, role *static.Role) (int, error) {
	b, err := f.ChampionBuild(ctx, static.DefaultRegion, role)
	if err != nil {
		return 0, err
	}
	return b.Matches, nil
}

// Build returns the world build as a normalized build.
func (f *Fetcher) Build(ctx context.Context, role *static.Role) (*datasource.Build, error) {
	b, err := f.ChampionBuild(ctx, static.DefaultRegion, role)
	if err != nil {
		return nil, err
	}
	return &datasource.Build{
		PrimaryStyle: b.PrimaryStyle,
		SubStyle:     b.SubStyle,
		Perks:        b.Perks,
		Shards:       b.Shards(),
		Spells:       b.Spells,
		Abilities:    b.AbilityOrder,
		MaxOrder:     b.MaxOrder,
		Starting:     b.StartingItems,
		Groups: []datasource.ItemGroup{
			{Label: "Early Items", Items: b.EarlyItems, WithMaxOrder: true},
			{Label: "Core Items", Items: b.CoreItems},
			{Label: "Situational Items", Items: b.SituationalItems},
			{Label: "Full Build Items", Items: b.FullBuildItems},
		},
	}, nil
}

func parseBuild(data gjson.Result) (*ChampionBuild, bool) {
	if !data.Exists() {
		return nil, false
	}
	perks := ints(data.Get("perks.IDs"))
	spells := ints(data.Get("spells"))
	if len(perks) < 3 || len(spells) != 2 {
		return nil, false
	}

	b := &ChampionBuild{
		PrimaryStyle: int(data.Get("perks.style").Int()),
		SubStyle:     int(data.Get("perks.subStyle").Int()),
		Perks:        perks,
		Spells:       build.SpellPair{spells[0], spells[1]},
		Matches:      int(data.Get("stats.matchCount").Int()),
		Wins:         int(data.Get("stats.wins").Int()),
	}

	for _, chunk := range data.Get("items").Array() {
		items := ints(chunk.Get("items"))
		switch chunk.Get("type").String() {
		case "Starter":
			b.StartingItems = items
		case "Early":
			b.EarlyItems = items
		case "Core":
			b.CoreItems = items
		case "Situational":
			b.SituationalItems = items
		case "FullBuild":
			b.FullBuildItems = items
		}
	}

	b.AbilityOrder = abilities(data.Get("skillOrder"))
	b.MaxOrder = abilities(data.Get("skillMaxOrder"))
	return b, true
}

func abilities(r gjson.Result) static.AbilitySequence {
	var seq static.AbilitySequence
	for _, n := range r.Array() {
		if a, ok := static.AbilityForNumber(int(n.Int())); ok {
			seq = append(seq, a)
		}
	}
	return seq
}

func ints(r gjson.Result) []int {
	arr := r.Array()
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v.Int()))
	}
	return out
}
