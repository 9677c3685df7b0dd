package champselect

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"runedraft/internal/build"
	"runedraft/internal/datasource"
	"runedraft/internal/lcu"
	"runedraft/internal/static"
)

type fakeClient struct {
	phases    []static.Phase
	champions []int
	queue     *static.Queue
	assigned  *static.Role

	pages     []lcu.RunePage
	nextID    int64
	currentID int64
	itemSets  *lcu.ItemSets

	created    []build.RunePagePayload
	deleted    []int64
	setCurrent []int64
	replaced   int
	spells     []build.SpellPair

	phaseCalls int
	onPhase    func(call int)
	pagesErr   error
}

// next returns the head of a script; the last entry repeats.
func next[T any](script *[]T) T {
	v := (*script)[0]
	if len(*script) > 1 {
		*script = (*script)[1:]
	}
	return v
}

func (f *fakeClient) GameflowPhase(ctx context.Context) (static.Phase, error) {
	f.phaseCalls++
	if f.onPhase != nil {
		f.onPhase(f.phaseCalls)
	}
	return next(&f.phases), nil
}

func (f *fakeClient) CurrentQueue(ctx context.Context) (*static.Queue, error) { return f.queue, nil }

func (f *fakeClient) AssignedRole(ctx context.Context) (*static.Role, error) { return f.assigned, nil }

func (f *fakeClient) CurrentChampion(ctx context.Context) (int, error) {
	return next(&f.champions), nil
}

func (f *fakeClient) RunePages(ctx context.Context) ([]lcu.RunePage, error) {
	if f.pagesErr != nil {
		return nil, f.pagesErr
	}
	out := make([]lcu.RunePage, len(f.pages))
	copy(out, f.pages)
	return out, nil
}

func (f *fakeClient) CreateRunePage(ctx context.Context, page build.RunePagePayload) error {
	f.nextID++
	f.pages = append(f.pages, lcu.RunePage{ID: f.nextID, Name: page.Name, IsEditable: true})
	if page.Current {
		f.currentID = f.nextID
	}
	f.created = append(f.created, page)
	return nil
}

func (f *fakeClient) DeleteRunePage(ctx context.Context, id int64) error {
	for i, p := range f.pages {
		if p.ID == id {
			f.pages = append(f.pages[:i], f.pages[i+1:]...)
			break
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) CurrentRunePage(ctx context.Context) (lcu.RunePage, error) {
	for _, p := range f.pages {
		if p.ID == f.currentID {
			return p, nil
		}
	}
	return lcu.RunePage{}, nil
}

func (f *fakeClient) SetCurrentRunePage(ctx context.Context, id int64) error {
	f.setCurrent = append(f.setCurrent, id)
	f.currentID = id
	return nil
}

func (f *fakeClient) ItemSets(ctx context.Context) (*lcu.ItemSets, error) { return f.itemSets, nil }

func (f *fakeClient) ReplaceItemSets(ctx context.Context, sets *lcu.ItemSets) error {
	f.itemSets = sets
	f.replaced++
	return nil
}

func (f *fakeClient) SetSummonerSpells(ctx context.Context, spells build.SpellPair) error {
	f.spells = append(f.spells, spells)
	return nil
}

func (f *fakeClient) pageID(name string) int64 {
	for _, p := range f.pages {
		if p.Name == name {
			return p.ID
		}
	}
	return 0
}

type fakeSource struct {
	roles []*static.Role
}

func (s *fakeSource) Roles(ctx context.Context) ([]*static.Role, error) { return s.roles, nil }

func (s *fakeSource) Runes(ctx context.Context, role *static.Role, active bool) (build.RunePage, error) {
	return build.RunePage{Name: role.DisplayName, PrimaryStyle: 8100, SubStyle: 8200, Runes: []int{8112}, Active: active}, nil
}

func (s *fakeSource) Items(ctx context.Context, role *static.Role, title, firstAbilities, maxOrder string) (build.ItemSet, error) {
	return build.ItemSet{
		Title:  title,
		Blocks: []build.ItemBlock{{Label: firstAbilities + " " + maxOrder, Items: []int{1056}}},
	}, nil
}

func (s *fakeSource) Summoners(ctx context.Context, role *static.Role) (build.SpellPair, error) {
	return build.SpellPair{14, 4}, nil
}

func (s *fakeSource) Abilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	return static.AbilitySequence{static.Q, static.W, static.Q, static.E}, nil
}

func (s *fakeSource) FirstAbilities(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	return static.AbilitySequence{static.Q, static.W, static.Q, static.E}, nil
}

func (s *fakeSource) MaxOrder(ctx context.Context, role *static.Role) (static.AbilitySequence, error) {
	return static.AbilitySequence{static.Q, static.E, static.W}, nil
}

type factoryCall struct {
	championID int
	queue      *static.Queue
	assigned   *static.Role
}

type fakeFactory struct {
	roles []*static.Role
	err   error
	calls []factoryCall
}

func (f *fakeFactory) open(ctx context.Context, championID int, queue *static.Queue, assigned *static.Role) (datasource.DataSource, error) {
	f.calls = append(f.calls, factoryCall{championID, queue, assigned})
	if f.err != nil {
		return nil, f.err
	}
	return &fakeSource{roles: f.roles}, nil
}

type names map[int]string

func (n names) ChampionName(id int) string { return n[id] }

const ChampSelect, InProgress = static.PhaseChampSelect, static.PhaseInProgress

func newTestReconciler(client *fakeClient, factory *fakeFactory) *Reconciler {
	return NewReconciler(Params{
		Client:       client,
		Sources:      factory.open,
		Champions:    names{103: "Ahri", 238: "Zed"},
		PollInterval: time.Millisecond,
	})
}

func existingPages() []lcu.RunePage {
	return []lcu.RunePage{
		{ID: 1, Name: "Top", IsEditable: true},
		{ID: 2, Name: "MyCustomPage", IsEditable: true},
		{ID: 3, Name: "Jungle", IsEditable: false},
	}
}

const existingItemSets = `{"accountId":7,"itemSets":[{"title":"Ahri Mid","uid":"a"},{"title":"MyFavorites","uid":"b"},{"title":"Zed Mid","uid":"c"}],"timestamp":42}`

func titles(sets *lcu.ItemSets) []string {
	return sets.Titles()
}

func TestRun_ChampionLock(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, ChampSelect, InProgress},
		champions: []int{0, 103},
		queue:     static.SummonersRift,
		assigned:  static.Middle,
		pages:     existingPages(),
		nextID:    3,
		itemSets:  lcu.NewItemSets(7, []byte(existingItemSets)),
	}
	factory := &fakeFactory{roles: []*static.Role{static.Middle, static.Top}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantCalls := []factoryCall{{103, static.SummonersRift, static.Middle}}
	if !reflect.DeepEqual(factory.calls, wantCalls) {
		t.Errorf("Expected one data source for Ahri Middle, got: %+v", factory.calls)
	}
	if want := []int64{1}; !reflect.DeepEqual(client.deleted, want) {
		t.Errorf("Expected only page 1 deleted, got: %v", client.deleted)
	}

	if len(client.created) != 2 {
		t.Fatalf("Expected 2 rune pages created, got: %d", len(client.created))
	}
	if client.created[0].Name != "Middle" || !client.created[0].IsActive {
		t.Errorf("Expected active Middle page first, got: %+v", client.created[0])
	}
	if client.created[1].Name != "Top" || client.created[1].IsActive {
		t.Errorf("Expected inactive Top page second, got: %+v", client.created[1])
	}
	if want := []int64{client.pageID("Middle")}; !reflect.DeepEqual(client.setCurrent, want) {
		t.Errorf("Expected Middle page %v to be set current, got: %v", want, client.setCurrent)
	}

	if client.replaced != 1 {
		t.Errorf("Expected item sets replaced once, got: %d", client.replaced)
	}
	if want := []string{"Ahri Mid", "MyFavorites"}; !reflect.DeepEqual(titles(client.itemSets), want) {
		t.Errorf("Expected item set titles %v, got: %v", want, titles(client.itemSets))
	}
	raw := client.itemSets.Raw()
	if gjson.GetBytes(raw, "timestamp").Int() != 42 || gjson.GetBytes(raw, "accountId").Int() != 7 {
		t.Errorf("Expected unknown fields to survive, got: %s", raw)
	}
	if label := gjson.GetBytes(raw, "itemSets.0.blocks.0.type").String(); label != "QWQE QEW" {
		t.Errorf("Expected ability strings in block label, got: %q", label)
	}
	if gjson.GetBytes(raw, "itemSets.1.uid").String() != "b" {
		t.Errorf("Expected retained set to keep its fields, got: %s", raw)
	}

	if want := []build.SpellPair{{14, 4}}; !reflect.DeepEqual(client.spells, want) {
		t.Errorf("Expected spells patched once, got: %v", client.spells)
	}
}

func TestRun_NoAssignedRole(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, InProgress},
		champions: []int{103},
		queue:     static.SummonersRift,
		itemSets:  lcu.NewItemSets(7, []byte(`{"itemSets":[]}`)),
	}
	factory := &fakeFactory{roles: []*static.Role{static.Top, static.Middle}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !client.created[0].IsActive || client.created[1].IsActive {
		t.Errorf("Expected first role page to be active, got: %+v", client.created)
	}
	if want := []int64{client.pageID("Top")}; !reflect.DeepEqual(client.setCurrent, want) {
		t.Errorf("Expected Top page to be set current, got: %v", client.setCurrent)
	}
	if want := []string{"Ahri Top"}; !reflect.DeepEqual(titles(client.itemSets), want) {
		t.Errorf("Expected item set titles %v, got: %v", want, titles(client.itemSets))
	}
}

func TestRun_RunePageSwitch(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, ChampSelect, InProgress},
		champions: []int{103},
		queue:     static.SummonersRift,
		assigned:  static.Middle,
		itemSets:  lcu.NewItemSets(7, []byte(`{"itemSets":[]}`)),
	}
	client.onPhase = func(call int) {
		// The player picks the Top page before the second pass.
		if call == 4 {
			client.currentID = client.pageID("Top")
		}
	}
	factory := &fakeFactory{roles: []*static.Role{static.Middle, static.Top}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(factory.calls) != 1 {
		t.Errorf("Expected data source built once, got: %d", len(factory.calls))
	}
	if len(client.created) != 2 {
		t.Errorf("Expected rune pages built once, got: %d creates", len(client.created))
	}
	if client.replaced != 2 {
		t.Errorf("Expected item sets replaced twice, got: %d", client.replaced)
	}
	if want := []string{"Ahri Top"}; !reflect.DeepEqual(titles(client.itemSets), want) {
		t.Errorf("Expected item set titles %v, got: %v", want, titles(client.itemSets))
	}
	if len(client.spells) != 2 {
		t.Errorf("Expected spells patched twice, got: %d", len(client.spells))
	}
}

func TestRun_CustomPageKeepsRole(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, ChampSelect, InProgress},
		champions: []int{103},
		queue:     static.SummonersRift,
		assigned:  static.Middle,
		pages:     []lcu.RunePage{{ID: 1, Name: "MyCustomPage", IsEditable: true}},
		nextID:    1,
		itemSets:  lcu.NewItemSets(7, []byte(`{"itemSets":[]}`)),
	}
	client.onPhase = func(call int) {
		if call == 4 {
			client.currentID = 1
		}
	}
	factory := &fakeFactory{roles: []*static.Role{static.Middle, static.Top}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if client.replaced != 1 {
		t.Errorf("Expected no rebuild after selecting a custom page, got: %d replaces", client.replaced)
	}
	if len(client.spells) != 1 {
		t.Errorf("Expected spells patched once, got: %d", len(client.spells))
	}
}

func TestRun_ChampionChange(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, ChampSelect, InProgress},
		champions: []int{103, 103, 238},
		queue:     static.SummonersRift,
		assigned:  static.Middle,
		itemSets:  lcu.NewItemSets(7, []byte(`{"itemSets":[]}`)),
	}
	factory := &fakeFactory{roles: []*static.Role{static.Middle, static.Top}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(factory.calls) != 2 || factory.calls[1].championID != 238 {
		t.Errorf("Expected a second data source for Zed, got: %+v", factory.calls)
	}
	if want := []int64{1, 2}; !reflect.DeepEqual(client.deleted, want) {
		t.Errorf("Expected first generated pages deleted, got: %v", client.deleted)
	}
	if len(client.pages) != 2 {
		t.Errorf("Expected only the new generated pages left, got: %+v", client.pages)
	}
	if len(client.setCurrent) != 2 {
		t.Errorf("Expected the active page set twice, got: %v", client.setCurrent)
	}
	if want := []string{"Zed Mid"}; !reflect.DeepEqual(titles(client.itemSets), want) {
		t.Errorf("Expected item set titles %v, got: %v", want, titles(client.itemSets))
	}
}

func TestRun_LeaveChampSelect(t *testing.T) {
	client := &fakeClient{
		phases:    []static.Phase{ChampSelect, ChampSelect, ChampSelect, static.PhaseLobby, InProgress},
		champions: []int{103},
		queue:     static.SummonersRift,
		itemSets:  lcu.NewItemSets(7, []byte(`{"itemSets":[]}`)),
	}
	factory := &fakeFactory{roles: []*static.Role{static.Middle}}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(factory.calls) != 1 {
		t.Errorf("Expected one data source, got: %d", len(factory.calls))
	}
	if client.phaseCalls != 5 {
		t.Errorf("Expected 5 phase reads, got: %d", client.phaseCalls)
	}
}

func TestRun_InProgressExitsImmediately(t *testing.T) {
	client := &fakeClient{phases: []static.Phase{InProgress}, champions: []int{0}}
	factory := &fakeFactory{}

	if err := newTestReconciler(client, factory).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if client.phaseCalls != 1 || len(factory.calls) != 0 {
		t.Errorf("Expected a single phase read, got: %d reads, %d sources", client.phaseCalls, len(factory.calls))
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name      string
		pagesErr  error
		sourceErr error
		want      error
	}{
		{"client unavailable", lcu.ErrGameClientUnavailable, nil, lcu.ErrGameClientUnavailable},
		{"no data", nil, datasource.ErrNoData, datasource.ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{
				phases:    []static.Phase{ChampSelect},
				champions: []int{103},
				queue:     static.SummonersRift,
				pagesErr:  tt.pagesErr,
			}
			factory := &fakeFactory{roles: []*static.Role{static.Middle}, err: tt.sourceErr}

			err := newTestReconciler(client, factory).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestRun_ContextCancel(t *testing.T) {
	client := &fakeClient{phases: []static.Phase{static.PhaseLobby}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestReconciler(client, &fakeFactory{}).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got: %v", err)
	}
}
