// Package noise provides seeded fractal noise fields for terrain
// generation. Sampling is by world coordinate, never by walking an RNG,
// so identical seeds reproduce identical fields.
package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// Field is a seeded 2D fractal noise field returning values in [-1,1].
type Field struct {
	src         opensimplex.Noise
	octaves     int
	frequency   float64
	persistence float64
}

func NewField(seed int64, octaves int, frequency, persistence float64) *Field {
	if octaves < 1 {
		octaves = 1
	}
	if frequency <= 0 {
		frequency = 0.05
	}
	if persistence <= 0 {
		persistence = 0.5
	}
	return &Field{
		src:         opensimplex.New(seed),
		octaves:     octaves,
		frequency:   frequency,
		persistence: persistence,
	}
}

// At samples the field at (x, y), layering octaves of decreasing amplitude
// and doubling frequency, normalized back into [-1,1].
func (f *Field) At(x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := f.frequency
	for i := 0; i < f.octaves; i++ {
		total += f.src.Eval2(x*freq, y*freq) * amplitude
		maxVal += amplitude
		amplitude *= f.persistence
		freq *= 2
	}
	return total / maxVal
}

// At01 is At remapped into [0,1].
func (f *Field) At01(x, y float64) float64 {
	return (f.At(x, y) + 1) / 2
}
