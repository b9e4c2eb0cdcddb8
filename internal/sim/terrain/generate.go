package terrain

import (
	"math"
	"math/rand"

	"terrasim.ai/internal/sim/noise"
)

const (
	baseNoiseOctaves = 4
	baseNoiseFreq    = 0.045
	baseNoisePersist = 0.5

	// Seed offsets keep the overlay wobble and the feature scatter on
	// streams independent of the base elevation noise.
	detailSeedOffset  = 101
	featureSeedOffset = 7919
)

// Runtime-path scatter densities (the heightmap profile carries no biome
// descriptor, so these are fixed).
const (
	runtimeTreeDensity = 0.18
	runtimeRockDensity = 0.10
)

// Generator synthesizes an initial terrain from a seed and biome
// descriptor. Identical (seed, biome) inputs reproduce bit-identical maps.
type Generator struct {
	seed   int64
	biome  Biome
	st     *State
	base   *noise.Field
	detail *noise.Field
	rng    *rand.Rand
}

// Generate replaces the full contents of st with a freshly generated
// terrain. Step order is fixed: base elevation, biome overlay, default
// water fill (river and coastal manage their own water), beach pass,
// feature scatter.
func Generate(st *State, seed int64, biome Biome) {
	biome.ApplyDefaults()
	g := &Generator{
		seed:   seed,
		biome:  biome,
		st:     st,
		base:   noise.NewField(seed, baseNoiseOctaves, baseNoiseFreq, baseNoisePersist),
		detail: noise.NewField(seed+detailSeedOffset, 2, 0.08, 0.5),
		rng:    rand.New(rand.NewSource(seed)),
	}
	st.reset()
	g.baseElevation()

	switch biome.ID {
	case BiomeRiver:
		g.carveRiver()
	case BiomeCoastal:
		g.carveCoast()
	case BiomeMesa:
		g.raiseMesas()
	}

	if biome.ID != BiomeRiver && biome.ID != BiomeCoastal {
		g.fillWater()
		g.coveragePonds()
	}

	st.applyBeachPass()
	st.scatterFeatures(seed+featureSeedOffset, biome.TreeDensity, biome.RockDensity)
	st.biomeID = biome.ID
}

func (g *Generator) baseElevation() {
	st := g.st
	for y := 0; y < st.height; y++ {
		for x := 0; x < st.width; x++ {
			n := g.base.At(float64(x), float64(y))
			e := g.biome.BaseElevation + int(math.Round(n*4*g.biome.ElevationVariation))
			st.elevation[y*st.width+x] = int8(clampElevation(e))
		}
	}
}

// fillWater assigns water by elevation tier; -3 becomes a lake bed, -2 a
// pond.
func (g *Generator) fillWater() {
	st := g.st
	for y := 0; y < st.height; y++ {
		for x := 0; x < st.width; x++ {
			c := Coord{X: x, Y: y}
			switch st.elevation[y*st.width+x] {
			case -3:
				st.water[c] = WaterLake
			case -2:
				st.water[c] = WaterPond
			}
		}
	}
}

// coveragePonds carves extra ponds until the water fraction reaches the
// descriptor's water_coverage. The default coverage of 0 leaves the
// elevation-driven fill untouched.
func (g *Generator) coveragePonds() {
	st := g.st
	if g.biome.WaterCoverage <= 0 {
		return
	}
	area := st.width * st.height
	for attempt := 0; attempt < 64; attempt++ {
		if float64(len(st.water)) >= g.biome.WaterCoverage*float64(area) {
			return
		}
		cx := g.rng.Intn(st.width)
		cy := g.rng.Intn(st.height)
		r := 2 + g.rng.Intn(3)
		g.carvePond(cx, cy, r, false)
	}
}

// carvePond carves an irregular pond of roughly radius r centered at
// (cx, cy). With deep set, the inner half becomes a -3 lake bed.
func (g *Generator) carvePond(cx, cy, r int, deep bool) {
	st := g.st
	for yy := cy - r - 2; yy <= cy+r+2; yy++ {
		for xx := cx - r - 2; xx <= cx+r+2; xx++ {
			c := Coord{X: xx, Y: yy}
			if !st.InBounds(c) {
				continue
			}
			d := math.Hypot(float64(xx-cx), float64(yy-cy))
			wobble := g.detail.At(float64(xx)*0.3, float64(yy)*0.3) * 1.5
			i := yy*st.width + xx
			switch {
			case deep && d <= float64(r)/2+wobble:
				st.elevation[i] = -3
				st.water[c] = WaterLake
			case d <= float64(r)+wobble:
				if st.elevation[i] > -2 {
					st.elevation[i] = -2
				}
				if st.water[c] == WaterNone {
					st.water[c] = WaterPond
				}
			}
		}
	}
}

// applyBeachPass forces every dry cell at elevation -1 or 0 that touches
// water down to -1 and marks it as beach. Shared by both generation paths.
func (s *State) applyBeachPass() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := Coord{X: x, Y: y}
			if s.water[c] != WaterNone {
				continue
			}
			e := s.elevation[y*s.width+x]
			if e != -1 && e != 0 {
				continue
			}
			adj := false
			for _, n := range neighbors4(c) {
				if s.InBounds(n) && s.water[n] != WaterNone {
					adj = true
					break
				}
			}
			if !adj {
				continue
			}
			s.elevation[y*s.width+x] = -1
			if s.features[c] == FeatureNone {
				s.features[c] = FeatureBeach
			}
		}
	}
}

// scatterFeatures rolls trees onto elevations 0–2 and rocks onto 2–4 from
// a dedicated RNG stream, skipping water and already-featured cells. The
// sparse/dense and small/large splits are 70/30.
func (s *State) scatterFeatures(seed int64, treeDensity, rockDensity float64) {
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := Coord{X: x, Y: y}
			if s.water[c] != WaterNone || s.features[c] != FeatureNone {
				continue
			}
			e := int(s.elevation[y*s.width+x])
			if e >= 0 && e <= 2 && rng.Float64() < treeDensity {
				if rng.Float64() < 0.7 {
					s.features[c] = FeatureTreeSparse
				} else {
					s.features[c] = FeatureTreeDense
				}
				continue
			}
			if e >= 2 && e <= 4 && rng.Float64() < rockDensity {
				if rng.Float64() < 0.7 {
					s.features[c] = FeatureRockSmall
				} else {
					s.features[c] = FeatureRockLarge
				}
			}
		}
	}
}
