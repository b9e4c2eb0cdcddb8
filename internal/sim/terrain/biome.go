package terrain

// Biome ids with a dedicated generation overlay. Any other id falls
// through to the default water fill.
const (
	BiomeRiver   = "river"
	BiomeCoastal = "coastal"
	BiomeMesa    = "mesa"
)

// Biome is the read-only descriptor driving generation. Zero values mean
// "use the default"; ApplyDefaults fills them in.
type Biome struct {
	ID string `yaml:"id"`

	BaseElevation      int     `yaml:"base_elevation"`
	ElevationVariation float64 `yaml:"elevation_variation"`
	WaterCoverage      float64 `yaml:"water_coverage"`
	TreeDensity        float64 `yaml:"tree_density"`
	RockDensity        float64 `yaml:"rock_density"`

	// Runtime path only.
	SeaLevel    float64 `yaml:"sea_level"`
	HeightScale float64 `yaml:"height_scale"`
}

// ApplyDefaults fills unset descriptor fields. BaseElevation and
// WaterCoverage default to zero and need no backfill.
func (b *Biome) ApplyDefaults() {
	if b.ElevationVariation <= 0 {
		b.ElevationVariation = 1.0
	}
	if b.TreeDensity <= 0 {
		b.TreeDensity = 0.15
	}
	if b.RockDensity <= 0 {
		b.RockDensity = 0.08
	}
	if b.SeaLevel <= 0 {
		b.SeaLevel = 10.0
	}
	if b.HeightScale <= b.SeaLevel {
		b.HeightScale = b.SeaLevel + 30.0
	}
}
