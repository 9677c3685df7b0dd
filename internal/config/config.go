// Package config loads runedraft's YAML configuration.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/config"
	"gopkg.in/yaml.v2"

	"runedraft/internal/logger"
)

// DefaultPath is the configuration file read from the working directory.
const DefaultPath = "runedraft.yaml"

//go:embed defaults.yaml
var defaultsYAML []byte

// Backend selects the statistics source.
type Backend string

const (
	BackendUGG        Backend = "ugg"
	BackendMobalytics Backend = "mobalytics"
)

// Valid reports whether b is a known backend.
func (b Backend) Valid() bool {
	return b == BackendUGG || b == BackendMobalytics
}

// LCUConfig holds game client connection settings.
type LCUConfig struct {
	Lockfile string        `yaml:"lockfile"`
	Timeout  time.Duration `yaml:"timeout"`
}

// UGGConfig holds U.GG endpoints.
type UGGConfig struct {
	VersionsURL string `yaml:"versions_url"`
	StatsURL    string `yaml:"stats_url"`
}

// MobalyticsConfig holds the Mobalytics endpoint.
type MobalyticsConfig struct {
	GraphQLURL string `yaml:"graphql_url"`
}

// DDragonConfig holds Data Dragon settings.
type DDragonConfig struct {
	BaseURL   string `yaml:"base_url"`
	CachePath string `yaml:"cache_path"`
}

// FeedConfig holds status feed settings. An empty address disables it.
type FeedConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// AppConfig holds all application configuration.
type AppConfig struct {
	Logger             logger.Config    `yaml:"logger"`
	FlashOnF           bool             `yaml:"flash_on_f"`
	RevertPatch        bool             `yaml:"revert_patch"`
	PreferredItemSlots map[string]int   `yaml:"preferred_item_slots"`
	SmallItems         []string         `yaml:"small_items"`
	Backend            Backend          `yaml:"backend"`
	UserAgent          string           `yaml:"user_agent"`
	LCU                LCUConfig        `yaml:"lcu"`
	UGG                UGGConfig        `yaml:"ugg"`
	Mobalytics         MobalyticsConfig `yaml:"mobalytics"`
	DDragon            DDragonConfig    `yaml:"ddragon"`
	Feed               FeedConfig       `yaml:"feed"`
}

// envOverrides are applied on top of the file.
type envOverrides struct {
	Backend  string `env:"RUNEDRAFT_BACKEND"`
	LogLevel string `env:"RUNEDRAFT_LOG_LEVEL"`
	FeedAddr string `env:"RUNEDRAFT_FEED_ADDR"`
	Lockfile string `env:"RUNEDRAFT_LOCKFILE"`
}

// Result reports what Load did besides parsing.
type Result struct {
	Created bool     // the file did not exist and defaults were written
	Added   []string // top-level keys backfilled into an existing file
}

// Load reads the configuration at path, layered over the built-in
// defaults. A missing file is created with the defaults and an outdated one
// is rewritten with the missing keys added. Environment variables (from the
// process or the given .env files) override the file.
func Load(path string, envFiles ...string) (*AppConfig, Result, error) {
	var res Result

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, res, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, defaultsYAML, 0644); err != nil {
			return nil, res, fmt.Errorf("write default config: %w", err)
		}
		res.Created = true
	} else if err != nil {
		return nil, res, fmt.Errorf("stat config: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, res, fmt.Errorf("read config: %w", err)
	}

	provider, err := config.NewYAML(
		config.Source(bytes.NewReader(defaultsYAML)),
		config.Source(bytes.NewReader(content)),
	)
	if err != nil {
		return nil, res, fmt.Errorf("parse config: %w", err)
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, res, fmt.Errorf("populate config: %w", err)
	}

	missing, err := missingKeys(content)
	if err != nil {
		return nil, res, err
	}
	if len(missing) > 0 {
		out, err := yaml.Marshal(&cfg)
		if err != nil {
			return nil, res, fmt.Errorf("encode config: %w", err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return nil, res, fmt.Errorf("rewrite config: %w", err)
		}
		res.Added = missing
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, res, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, res, err
	}
	return &cfg, res, nil
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// missingKeys lists the default top-level keys absent from content.
func missingKeys(content []byte) ([]string, error) {
	var defaults, current yaml.MapSlice
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	if err := yaml.Unmarshal(content, &current); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	present := make(map[string]bool, len(current))
	for _, item := range current {
		present[fmt.Sprint(item.Key)] = true
	}
	var missing []string
	for _, item := range defaults {
		if key := fmt.Sprint(item.Key); !present[key] {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

func applyEnv(cfg *AppConfig) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Backend != "" {
		cfg.Backend = Backend(o.Backend)
	}
	if o.LogLevel != "" {
		cfg.Logger.Level = o.LogLevel
	}
	if o.FeedAddr != "" {
		cfg.Feed.ListenAddr = o.FeedAddr
	}
	if o.Lockfile != "" {
		cfg.LCU.Lockfile = o.Lockfile
	}
	return nil
}

// Validate checks enum and range constraints.
func (c *AppConfig) Validate() error {
	if !c.Backend.Valid() {
		return fmt.Errorf("invalid backend %q: expected %q or %q", c.Backend, BackendUGG, BackendMobalytics)
	}
	for item, slot := range c.PreferredItemSlots {
		if slot < 1 || slot > 6 {
			return fmt.Errorf("invalid preferred slot %d for %q: expected 1-6", slot, item)
		}
	}
	return nil
}
