// Package config provides configuration loading and access for the
// simulation: tick timing, network topology, and the on-disk layout of
// content definitions consumed at kernel construction (§6.1).
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Network    NetworkConfig    `yaml:"network"`
	Content    ContentConfig    `yaml:"content"`
}

// SimulationConfig mirrors kernel.Config, the per-tick tunables the kernel
// needs beyond content definitions.
type SimulationConfig struct {
	MsPerTick      int64  `yaml:"ms_per_tick"`
	ResourceTickHz int64  `yaml:"resource_tick_hz"`
	Seed           uint32 `yaml:"seed"`
}

// NetworkConfig is the lockstep transport's topology (§4.4, §5): which
// address to listen on, which peers to dial, and where to write desync
// state dumps.
type NetworkConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	PeerAddrs   []string `yaml:"peer_addrs"`
	LocalPlayer uint8    `yaml:"local_player"`
	DumpDir     string   `yaml:"dump_dir"`
	MetricsDir  string   `yaml:"metrics_dir"`
}

// ContentConfig is the on-disk layout the asset loader reads from, one
// directory of per-type YAML documents per content kind (§6.1). Compiled
// piece-tree models and COB bytecode are a separate asset-pipeline
// concern this package only records the directory for.
type ContentConfig struct {
	UnitsDir    string `yaml:"units_dir"`
	WeaponsDir  string `yaml:"weapons_dir"`
	FeaturesDir string `yaml:"features_dir"`
	ModelsDir   string `yaml:"models_dir"`
	ScriptsDir  string `yaml:"scripts_dir"`
	MapPath     string `yaml:"map_path"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML saves cfg to path as YAML.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
