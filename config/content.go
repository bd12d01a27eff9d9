package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/kernel"
	"github.com/pthm-cable/tacore/simtypes"
	"github.com/pthm-cable/tacore/spatial"
	"gopkg.in/yaml.v3"
)

// mapDocument is the on-disk shape of ContentConfig.MapPath: a row-major
// heightfield plus sea level, the minimal terrain §6.1 requires.
type mapDocument struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	SeaLevel float64   `yaml:"sea_level"`
	Heights  []float64 `yaml:"heights"`
}

// KernelConfig projects SimulationConfig into kernel.Config.
func (c *Config) KernelConfig() kernel.Config {
	return kernel.Config{
		MsPerTick:      c.Simulation.MsPerTick,
		ResourceTickHz: c.Simulation.ResourceTickHz,
		Seed:           c.Simulation.Seed,
	}
}

// LoadContent reads every unit/weapon/feature definition under the
// ContentConfig directories into a kernel.Content, and the map document
// into a kernel.Terrain (§6.1). Compiled piece-tree models and COB
// bytecode are loaded by whatever asset pipeline produces them;
// LoadContent leaves those two maps empty for the caller to
// fill in, matching the kernel's tolerant "model/script not found, treat
// unit as bare" lookup behavior in spawnUnit.
func (c *Config) LoadContent() (kernel.Content, kernel.Terrain, error) {
	content := kernel.Content{
		Units:    make(map[string]*entities.UnitDefinition),
		Weapons:  make(map[string]*entities.WeaponDefinition),
		Features: make(map[string]*entities.FeatureDefinition),
		Models:   make(map[string]*entities.UnitModelDefinition),
	}

	if err := loadYAMLDir(c.Content.UnitsDir, func(name string, data []byte) error {
		var def entities.UnitDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return err
		}
		content.Units[name] = &def
		return nil
	}); err != nil {
		return content, kernel.Terrain{}, fmt.Errorf("config: loading units: %w", err)
	}

	if err := loadYAMLDir(c.Content.WeaponsDir, func(name string, data []byte) error {
		var def entities.WeaponDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return err
		}
		content.Weapons[name] = &def
		return nil
	}); err != nil {
		return content, kernel.Terrain{}, fmt.Errorf("config: loading weapons: %w", err)
	}

	if err := loadYAMLDir(c.Content.FeaturesDir, func(name string, data []byte) error {
		var def entities.FeatureDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return err
		}
		content.Features[name] = &def
		return nil
	}); err != nil {
		return content, kernel.Terrain{}, fmt.Errorf("config: loading features: %w", err)
	}

	terrain, err := loadTerrain(c.Content.MapPath)
	if err != nil {
		return content, kernel.Terrain{}, fmt.Errorf("config: loading map: %w", err)
	}

	return content, terrain, nil
}

// loadYAMLDir calls fn(stem, contents) for every *.yaml file directly
// under dir, keyed by its filename without extension — the content
// convention every unit/weapon/feature file uses for its own type name.
// A missing directory is not an error: a deployment may genuinely have no
// features to load, for instance.
func loadYAMLDir(dir string, fn func(name string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		if err := fn(name, data); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
	}
	return nil
}

func loadTerrain(path string) (kernel.Terrain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kernel.Terrain{}, err
	}
	var doc mapDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return kernel.Terrain{}, err
	}
	if len(doc.Heights) != doc.Width*doc.Height {
		return kernel.Terrain{}, fmt.Errorf("map %s: heights length %d does not match %dx%d", path, len(doc.Heights), doc.Width, doc.Height)
	}

	grid := spatial.NewGrid[simtypes.SimScalar](doc.Width, doc.Height)
	for y := 0; y < doc.Height; y++ {
		for x := 0; x < doc.Width; x++ {
			grid.Set(x, y, simtypes.NewSimScalar(doc.Heights[y*doc.Width+x]))
		}
	}

	return kernel.Terrain{
		Height:   grid,
		SeaLevel: simtypes.NewSimScalar(doc.SeaLevel),
	}, nil
}
