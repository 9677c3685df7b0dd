// Package backend selects the statistics backend named in the configuration.
package backend

import (
	"fmt"
	"net/http"
	"sort"

	"runedraft/internal/build"
	"runedraft/internal/config"
	"runedraft/internal/datasource"
	"runedraft/internal/ddragon"
	"runedraft/internal/logger"
	"runedraft/internal/mobalytics"
	"runedraft/internal/ugg"
)

// ItemLookup resolves configured item names.
type ItemLookup interface {
	ItemID(name string) (int, bool)
}

// Options converts the item names in cfg to ids. Names Data Dragon does not
// know are skipped with a warning. Preferred slots are ordered by item id,
// one per item; among names for the same item the first in sorted order wins.
func Options(cfg *config.AppConfig, items ItemLookup, log logger.Logger) datasource.Options {
	if log == nil {
		log = logger.NewNop()
	}
	opts := datasource.Options{
		FlashOnF:       cfg.FlashOnF,
		RevertPatch:    cfg.RevertPatch,
		SmallItems:     []int{},
		PreferredSlots: []build.PreferredSlot{},
	}

	for _, name := range cfg.SmallItems {
		id, ok := items.ItemID(name)
		if !ok {
			log.WarnW("unknown small item, skipping", "item", name)
			continue
		}
		opts.SmallItems = append(opts.SmallItems, id)
	}

	names := make([]string, 0, len(cfg.PreferredItemSlots))
	for name := range cfg.PreferredItemSlots {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[int]string, len(names))
	for _, name := range names {
		id, ok := items.ItemID(name)
		if !ok {
			log.WarnW("unknown preferred slot item, skipping", "item", name)
			continue
		}
		if first, dup := seen[id]; dup {
			log.WarnW("item already has a preferred slot, skipping", "item", name, "kept", first)
			continue
		}
		seen[id] = name
		opts.PreferredSlots = append(opts.PreferredSlots, build.PreferredSlot{ItemID: id, Slot: cfg.PreferredItemSlots[name]})
	}
	sort.Slice(opts.PreferredSlots, func(i, j int) bool {
		return opts.PreferredSlots[i].ItemID < opts.PreferredSlots[j].ItemID
	})

	return opts
}

// Params wires a backend into a datasource.Factory.
type Params struct {
	Config     *config.AppConfig
	Static     *ddragon.Static
	HTTPClient *http.Client
	Logger     logger.Logger
}

// NewFactory returns the data source factory for the configured backend.
func NewFactory(p Params) (datasource.Factory, error) {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	fp := datasource.FactoryParams{
		Static:  p.Static,
		Options: Options(p.Config, p.Static, log),
		Logger:  log,
	}

	switch p.Config.Backend {
	case config.BackendUGG:
		client := ugg.NewClient(ugg.Params{
			VersionsURL: p.Config.UGG.VersionsURL,
			StatsURL:    p.Config.UGG.StatsURL,
			UserAgent:   p.Config.UserAgent,
			HTTPClient:  p.HTTPClient,
			Logger:      log.With("backend", "ugg"),
		})
		return datasource.NewFactory(fp, client.Open), nil
	case config.BackendMobalytics:
		client := mobalytics.NewClient(mobalytics.Params{
			GraphQLURL: p.Config.Mobalytics.GraphQLURL,
			UserAgent:  p.Config.UserAgent,
			HTTPClient: p.HTTPClient,
			Champions:  p.Static,
			Logger:     log.With("backend", "mobalytics"),
		})
		return datasource.NewFactory(fp, client.Open), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", p.Config.Backend)
	}
}
