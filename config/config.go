// package config loads and saves the swlist configuration, a TOML file
// stored in the user configuration directory.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"softlist/log"
	"softlist/swlist"
)

type Config struct {
	General    GeneralConfig    `toml:"general"`
	Lists      []ListConfig     `toml:"list"`
	Interfaces InterfacesConfig `toml:"interfaces"`
}

type GeneralConfig struct {
	// HashPath holds the directories searched for software list sources.
	HashPath []string `toml:"hash_path"`
	// Log holds comma-separated modules to enable debug logs for.
	Log string `toml:"log"`
}

// ListConfig configures a software list. Lists that aren't configured are
// original system lists without filter.
type ListConfig struct {
	Name   string          `toml:"name"`
	Type   swlist.ListType `toml:"type"`
	Filter string          `toml:"filter"`
}

type InterfacesConfig struct {
	// Extra interfaces, added to the default registry.
	Extra []string `toml:"extra"`
}

var defaultConfig = Config{
	General: GeneralConfig{
		HashPath: []string{"hash"},
	},
}

// Default returns the default configuration.
func Default() Config {
	cfg := defaultConfig
	cfg.General.HashPath = slices.Clone(defaultConfig.General.HashPath)
	return cfg
}

const DefaultFileMode = os.FileMode(0755)

var Dir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("swlist")
	if err := configdir.MakePath(dir); err != nil {
		log.ModConfig.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// Load loads the configuration file at path. Settings missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	for _, key := range md.Undecoded() {
		log.ModConfig.WithField("file", path).Warnf("unknown configuration key %s", key)
	}
	return cfg, nil
}

// LoadOrDefault loads the configuration from the swlist config directory, or
// provides a default one.
func LoadOrDefault() Config {
	path := filepath.Join(Dir(), cfgFilename)
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModConfig.Warnf("can't load configuration, using default: %v", err)
		}
		return Default()
	}
	return cfg
}

// Save saves cfg at path.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// SaveDefault saves cfg into the swlist config directory.
func SaveDefault(cfg Config) error {
	return Save(filepath.Join(Dir(), cfgFilename), cfg)
}

// Registry returns the interface registry: the default one extended with
// the configured extra interfaces.
func (cfg Config) Registry() *swlist.Interfaces {
	return swlist.DefaultInterfaces.With(cfg.Interfaces.Extra...)
}

// Source returns the source looking for lists in the hash path.
func (cfg Config) Source() swlist.Source {
	return swlist.SearchPath(cfg.General.HashPath)
}

// ListConfig returns the configuration of the list with the given name.
func (cfg Config) ListConfig(name string) swlist.Config {
	lc := swlist.Config{
		Name:       name,
		Type:       swlist.OriginalSystem,
		Interfaces: cfg.Registry(),
	}
	for _, l := range cfg.Lists {
		if l.Name == name {
			lc.Type = l.Type
			lc.Filter = l.Filter
			break
		}
	}
	return lc
}

// NewList returns the list with the given name, read from the hash path.
func (cfg Config) NewList(name string) *swlist.List {
	return swlist.New(cfg.ListConfig(name), cfg.Source())
}

// EnableLogs enables debug logs for the modules in the Log setting.
func (cfg Config) EnableLogs() error {
	mask, err := log.ParseModules(cfg.General.Log)
	if err != nil {
		return err
	}
	log.EnableDebugModules(mask)
	return nil
}
