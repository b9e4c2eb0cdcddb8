package terrain

import (
	"fmt"
	"math"
)

// ChunkKey addresses one square chunk of the grid for LOD queries.
type ChunkKey struct {
	CX int
	CY int
}

// Pipeline bundles the three collaborators of the runtime generation
// path. The legacy and runtime generators are interchangeable strategies;
// configuration picks one.
type Pipeline interface {
	// GenerateHeightmap synthesizes size*size elevation samples for the
	// named profile.
	GenerateHeightmap(size int, profile string) ([]float64, error)
	// Erode smooths/carves the heightmap in place over the given number of
	// iterations.
	Erode(heightmap []float64, size, iterations int, seed int64)
	// ComputeVisibleChunks plans which terrain chunks a renderer at the
	// given camera position needs. Not used during generation.
	ComputeVisibleChunks(camX, camY float64, chunkSize int) []ChunkKey
}

// RuntimeGenerator rasterizes a collaborator-produced heightmap into a
// State and runs the shared finishing passes.
type RuntimeGenerator struct {
	pipe       Pipeline
	iterations int
	listeners  []HeightmapListener
}

func NewRuntimeGenerator(pipe Pipeline, erosionIterations int) *RuntimeGenerator {
	if erosionIterations < 0 {
		erosionIterations = 0
	}
	return &RuntimeGenerator{pipe: pipe, iterations: erosionIterations}
}

// OnHeightmap registers a listener for the raw heightmap produced by each
// generation run.
func (g *RuntimeGenerator) OnHeightmap(fn HeightmapListener) {
	g.listeners = append(g.listeners, fn)
}

// Generate replaces the full contents of st from the pipeline's heightmap.
// Samples below sea level become water (a -3 lake bed when the depth
// exceeds 35% of sea level, shallow -2 otherwise); the rest map linearly
// onto elevations 0..5. A heightmap shorter than size*size is a
// configuration error.
func (g *RuntimeGenerator) Generate(st *State, seed int64, biome Biome) error {
	biome.ApplyDefaults()
	size := st.Width()
	if st.Height() != size {
		return fmt.Errorf("runtime generation needs a square grid, got %dx%d", st.Width(), st.Height())
	}

	hm, err := g.pipe.GenerateHeightmap(size, biome.ID)
	if err != nil {
		return fmt.Errorf("generate heightmap: %w", err)
	}
	if len(hm) < size*size {
		return fmt.Errorf("heightmap too short: got %d samples, need %d", len(hm), size*size)
	}
	if g.iterations > 0 {
		g.pipe.Erode(hm, size, g.iterations, seed)
	}

	sl := biome.SeaLevel
	hs := biome.HeightScale

	st.reset()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			h := hm[y*size+x]
			c := Coord{X: x, Y: y}
			i := y*size + x
			if depth := sl - h; depth > 0 {
				if depth > 0.35*sl {
					st.elevation[i] = -3
				} else {
					st.elevation[i] = -2
				}
				st.water[c] = WaterLake
				continue
			}
			st.elevation[i] = int8(rasterElevation(h, sl, hs))
		}
	}

	st.applyBeachPass()
	st.scatterFeatures(seed+featureSeedOffset, runtimeTreeDensity, runtimeRockDensity)
	st.biomeID = biome.ID

	for _, fn := range g.listeners {
		fn(hm, size, sl)
	}
	return nil
}

// rasterElevation maps a dry sample in [sl, hs] linearly onto 0..5.
func rasterElevation(h, sl, hs float64) int {
	t := 0.0
	if hs > sl {
		t = (h - sl) / (hs - sl)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	e := int(math.Round(t * 5))
	if e < 0 {
		e = 0
	}
	if e > 5 {
		e = 5
	}
	return e
}
