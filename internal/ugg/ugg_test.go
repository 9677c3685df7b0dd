package ugg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"runedraft/internal/build"
	"runedraft/internal/datasource"
	"runedraft/internal/ddragon"
	"runedraft/internal/static"
)

const (
	manifestFixture = `{"14_3":{"primary_roles":"1.5.0","overview":"1.5.0","rankings":"1.5.0"}}`
	primaryFixture  = `{"103":[5,4],"1":[5]}`
	overviewFixture = `{"12":{"10":{"5":[[
		[2000,1050,8100,8200,[8112,8139,8138,8135,8226,8237]],
		[1900,1000,[4,14]],
		[1800,950,[1056,2003]],
		[1500,800,[6655,3020,4645]],
		[1400,750,["Q","W","E","Q","Q","R"],"QWE"],
		[[[3089,100,200],[3135,50,90]],[[3157,10,20]],[]],
		[1050,2000],
		false,
		[1700,900,["5008","5008","5002"]]
	]]}}}`
	rankingsFixture = `{"12":{"10":{"5":[1050,2000],"4":[20,40]}}}`
)

func newUGGServer(t *testing.T, overrides map[string]int) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/versions.json":                                        manifestFixture,
		"/lol/1.5/primary_roles/14_3/1.5.0.json":                primaryFixture,
		"/lol/1.5/overview/14_3/ranked_solo_5x5/103/1.5.0.json": overviewFixture,
		"/lol/1.5/rankings/14_3/ranked_solo_5x5/103/1.5.0.json": rankingsFixture,
		"/lol/1.5/overview/14_3/ranked_solo_5x5/1/1.5.0.json":   `not json`,
		"/lol/1.5/rankings/14_3/ranked_solo_5x5/1/1.5.0.json":   `{}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header to be set")
		}
		if code, ok := overrides[r.URL.Path]; ok {
			w.WriteHeader(code)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(Params{
		VersionsURL: server.URL + "/versions.json",
		StatsURL:    server.URL + "/lol",
	})
}

var current = ddragon.Patch{Version: "14.3.1"}

func TestOpen_Overview(t *testing.T) {
	client := newTestClient(newUGGServer(t, nil))

	f, err := client.Open(context.Background(), 103, static.SummonersRift, current)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	o, err := f.Overview("world", static.Middle)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	want := &Overview{
		Matches:       2000,
		Wins:          1050,
		PrimaryStyle:  8100,
		SubStyle:      8200,
		Runes:         []int{8112, 8139, 8138, 8135, 8226, 8237},
		Shards:        []int{5008, 5008, 5002},
		Spells:        build.SpellPair{4, 14},
		StartingItems: []int{1056, 2003},
		CoreItems:     []int{6655, 3020, 4645},
		AbilityOrder:  static.AbilitySequence{static.Q, static.W, static.E, static.Q, static.Q, static.R},
		MaxOrder:      static.AbilitySequence{static.Q, static.W, static.E},
		ItemOptions: [3][]ItemOption{
			{{ItemID: 3089, Wins: 100, Matches: 200}, {ItemID: 3135, Wins: 50, Matches: 90}},
			{{ItemID: 3157, Wins: 10, Matches: 20}},
			nil,
		},
	}
	if !reflect.DeepEqual(o, want) {
		t.Errorf("Expected %+v, got: %+v", want, o)
	}

	again, _ := f.Overview("world", static.Middle)
	if again != o {
		t.Error("Expected overview lookup to be memoized")
	}
}

func TestFetcher_RolesAndRankings(t *testing.T) {
	client := newTestClient(newUGGServer(t, nil))
	ctx := context.Background()

	f, err := client.Open(ctx, 103, static.SummonersRift, current)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	roles, err := f.AvailableRoles(ctx)
	if err != nil {
		t.Fatalf("AvailableRoles() error = %v", err)
	}
	if !reflect.DeepEqual(roles, []*static.Role{static.Middle, static.Top}) {
		t.Errorf("Unexpected roles: %v", roles)
	}

	n, err := f.MatchCount(ctx, static.Top)
	if err != nil || n != 40 {
		t.Errorf("Expected 40 matches, got: %d, %v", n, err)
	}

	if _, err := f.MatchCount(ctx, static.Support); !errors.Is(err, datasource.ErrNoData) {
		t.Errorf("Expected ErrNoData for missing role, got: %v", err)
	}
	if _, err := f.Overview("world", static.Top); !errors.Is(err, datasource.ErrNoData) {
		t.Errorf("Expected ErrNoData for missing overview, got: %v", err)
	}
}

func TestFetcher_Build(t *testing.T) {
	client := newTestClient(newUGGServer(t, nil))
	f, err := client.Open(context.Background(), 103, static.SummonersRift, current)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	b, err := f.Build(context.Background(), static.Middle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	wantGroups := []datasource.ItemGroup{
		{Label: "Core Items", Items: []int{6655, 3020, 4645}, WithMaxOrder: true},
		{Label: "Item 4 Options", Items: []int{3089, 3135}},
		{Label: "Item 5 Options", Items: []int{3157}},
		{Label: "Item 6 Options", Items: []int{}},
	}
	if !reflect.DeepEqual(b.Groups, wantGroups) {
		t.Errorf("Expected %+v, got: %+v", wantGroups, b.Groups)
	}
	if !reflect.DeepEqual(b.Starting, []int{1056, 2003}) {
		t.Errorf("Unexpected starting items: %v", b.Starting)
	}
}

func TestFetcher_NonRiftQueueUsesQueueRoles(t *testing.T) {
	f := &Fetcher{championID: 103, queue: static.HowlingAbyss}

	roles, err := f.AvailableRoles(context.Background())
	if err != nil || len(roles) != 1 || roles[0] != static.ARAM {
		t.Errorf("Expected ARAM role, got: %v, %v", roles, err)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name       string
		championID int
		patch      ddragon.Patch
		overrides  map[string]int
		wantErr    error
	}{
		{
			name:       "patch missing from manifest",
			championID: 103,
			patch:      ddragon.Patch{Version: "14.2.1"},
			wantErr:    datasource.ErrNoData,
		},
		{
			name:       "champion missing from primary roles",
			championID: 999,
			patch:      current,
			wantErr:    datasource.ErrNoData,
		},
		{
			name:       "overview forbidden",
			championID: 103,
			patch:      current,
			overrides:  map[string]int{"/lol/1.5/overview/14_3/ranked_solo_5x5/103/1.5.0.json": http.StatusForbidden},
			wantErr:    datasource.ErrNoData,
		},
		{
			name:       "server error",
			championID: 103,
			patch:      current,
			overrides:  map[string]int{"/versions.json": http.StatusBadGateway},
			wantErr:    datasource.ErrTransport,
		},
		{
			name:       "invalid json",
			championID: 1,
			patch:      current,
			wantErr:    datasource.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(newUGGServer(t, tt.overrides))
			_, err := client.Open(context.Background(), tt.championID, static.SummonersRift, tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpen_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server)
	server.Close()

	_, err := client.Open(context.Background(), 103, static.SummonersRift, current)
	if !errors.Is(err, datasource.ErrTransport) {
		t.Errorf("Expected ErrTransport, got: %v", err)
	}
}
