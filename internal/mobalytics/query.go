package mobalytics

const (
	operationName = "LolChampionPageQuery"
	queryHash     = "b8bb420a9484863bceda642c365d9bbae62f6531654572620e86a7ca1532202c"
)

// Ranks maps rank filters to Mobalytics rank names.
var Ranks = map[string]string{
	"pro":            "Pro",
	"challenger":     "Challenger",
	"master":         "Master",
	"diamond":        "Diamond",
	"platinum":       "Platinum",
	"gold":           "Gold",
	"silver":         "Silver",
	"bronze":         "Bronze",
	"overall":        "All",
	"platinum_plus":  "PlatinumPlus",
	"diamond_plus":   "DiamondPlus",
	"iron":           "Iron",
	"grandmaster":    "GrandMaster",
	"master_plus":    "MasterPlus",
	"diamond_2_plus": "Diamond2Plus",
}

// Regions maps platform ids to Mobalytics region names.
var Regions = map[string]string{
	"na1":   "NA",
	"euw1":  "EUW",
	"kr":    "KR",
	"eun1":  "EUNE",
	"br1":   "BR",
	"la1":   "LAN",
	"la2":   "LAS",
	"oc1":   "OCE",
	"ru":    "RU",
	"tr1":   "TR",
	"jp1":   "JP",
	"world": "ALL",
}

type request struct {
	OperationName string     `json:"operationName"`
	Variables     variables  `json:"variables"`
	Extensions    extensions `json:"extensions"`
}

type extensions struct {
	PersistedQuery persistedQuery `json:"persistedQuery"`
}

type persistedQuery struct {
	Version    int    `json:"version"`
	SHA256Hash string `json:"sha256Hash"`
}

// variables of the champion page query. Nil pointers encode as null.
type variables struct {
	Slug                   string  `json:"slug"`
	SummonerName           *string `json:"summonerName"`
	SummonerRegion         *string `json:"summonerRegion"`
	BuildID                *string `json:"buildId"`
	VsChampionRole         *string `json:"vsChampionRole"`
	Matchups               *string `json:"matchups"`
	Role                   *string `json:"role"`
	Queue                  *string `json:"queue"`
	Region                 *string `json:"region"`
	ProPlayerType          *string `json:"proPlayerType"`
	Rank                   *string `json:"rank"`
	MatchResult            *string `json:"matchResult"`
	WithCommon             bool    `json:"withCommon"`
	WithRoleSpecificCommon bool    `json:"withRoleSpecificCommon"`
	WithGuidesData         bool    `json:"withGuidesData"`
	WithBuildsList         bool    `json:"withBuildsList"`
	WithRunesBuildsList    bool    `json:"withRunesBuildsList"`
	WithAramBuildsList     bool    `json:"withAramBuildsList"`
	WithCountersList       bool    `json:"withCountersList"`
	WithCountersStats      bool    `json:"withCountersStats"`
	WithFilters            bool    `json:"withFilters"`
	WithBuild              bool    `json:"withBuild"`
	WithRunesBuild         bool    `json:"withRunesBuild"`
	WithAramBuild          bool    `json:"withAramBuild"`
	WithCounter            bool    `json:"withCounter"`
	WithProBuilds          bool    `json:"withProBuilds"`
	WithProBuildsMatches   bool    `json:"withProBuildsMatches"`
	SortField              string  `json:"sortField"`
	Order                  string  `json:"order"`
	Patch                  string  `json:"patch"`
}

// queryKey identifies one query; empty strings stand for null.
type queryKey struct {
	buildID string
	role    string
	region  string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newRequest(slug, queue, rank, patch string, key queryKey) request {
	return request{
		OperationName: operationName,
		Variables: variables{
			Slug:               slug,
			BuildID:            optional(key.buildID),
			Role:               optional(key.role),
			Queue:              optional(queue),
			Region:             optional(Regions[key.region]),
			Rank:               optional(Ranks[rank]),
			WithCommon:         true,
			WithBuildsList:     true,
			WithAramBuildsList: true,
			WithFilters:        true,
			WithBuild:          true,
			WithAramBuild:      true,
			SortField:          "WR",
			Order:              "DESC",
			Patch:              patch,
		},
		Extensions: extensions{
			PersistedQuery: persistedQuery{Version: 1, SHA256Hash: queryHash},
		},
	}
}
