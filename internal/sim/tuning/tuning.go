package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terrasim.ai/internal/sim/terrain"
)

// Config is the world-level tuning loaded from world.yaml.
type Config struct {
	WorldID string `yaml:"world_id"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Seed    int64  `yaml:"seed"`

	// "legacy" or "runtime".
	Generator string `yaml:"generator"`
	Biome     string `yaml:"biome"`

	// Runtime path.
	ErosionIterations int `yaml:"erosion_iterations"`
	ViewRadius        int `yaml:"view_radius"`
	ChunkSize         int `yaml:"chunk_size"`

	// Named biome presets; the Biome field selects one. A name with no
	// preset still generates: the id alone picks the overlay.
	Biomes map[string]terrain.Biome `yaml:"biomes"`
}

func Load(path string) (Config, error) {
	var c Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("world.yaml: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

func Defaults() Config {
	c := Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.WorldID == "" {
		c.WorldID = "world_1"
	}
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 128
	}
	if c.Generator == "" {
		c.Generator = "legacy"
	}
	if c.ErosionIterations <= 0 {
		c.ErosionIterations = 20
	}
	if c.ViewRadius <= 0 {
		c.ViewRadius = 4
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 16
	}
}

// ResolveBiome returns the selected biome preset, or a bare descriptor
// carrying just the id when no preset matches.
func (c Config) ResolveBiome() terrain.Biome {
	if b, ok := c.Biomes[c.Biome]; ok {
		if b.ID == "" {
			b.ID = c.Biome
		}
		return b
	}
	return terrain.Biome{ID: c.Biome}
}
