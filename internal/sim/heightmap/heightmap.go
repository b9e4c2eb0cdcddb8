// Package heightmap provides the default collaborators for the runtime
// terrain generation path: a seeded Perlin heightmap synthesizer, an
// in-place erosion pass, and the LOD chunk planner.
package heightmap

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// Per-profile synthesis parameters. Base is the mean sample height, Amp
// the noise amplitude around it, Freq the sampling frequency.
type profileParams struct {
	Base float64
	Amp  float64
	Freq float64
}

var profiles = map[string]profileParams{
	"":        {Base: 15, Amp: 15, Freq: 0.03},
	"river":   {Base: 12, Amp: 14, Freq: 0.03},
	"coastal": {Base: 9, Amp: 18, Freq: 0.025},
	"mesa":    {Base: 24, Amp: 22, Freq: 0.02},
}

// Pipeline is the default runtime-path collaborator set.
type Pipeline struct {
	Seed       int64
	ViewRadius int // chunks each side of the camera chunk; 0 means 4
}

func New(seed int64) *Pipeline {
	return &Pipeline{Seed: seed}
}

// GenerateHeightmap synthesizes size*size samples for the named profile.
// Unknown profiles use the default parameters.
func (p *Pipeline) GenerateHeightmap(size int, profile string) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid heightmap size %d", size)
	}
	prof, ok := profiles[profile]
	if !ok {
		prof = profiles[""]
	}
	pn := perlin.NewPerlin(2, 2, 3, p.Seed)
	hm := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := pn.Noise2D(float64(x)*prof.Freq, float64(y)*prof.Freq)
			hm[y*size+x] = prof.Base + v*prof.Amp
		}
	}
	return hm, nil
}
