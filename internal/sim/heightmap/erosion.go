package heightmap

import "math/rand"

// Material only moves when the slope to a neighbor exceeds this.
const talusThreshold = 0.8

// Erode runs a seeded thermal erosion over the heightmap in place: each
// iteration moves a fraction of any over-steep slope from a cell to its
// lowest 4-neighbor, with a small seeded jitter on the transfer amount.
func (p *Pipeline) Erode(heightmap []float64, size, iterations int, seed int64) {
	if size <= 0 || len(heightmap) < size*size || iterations <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed))
	for it := 0; it < iterations; it++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				i := y*size + x
				h := heightmap[i]

				low := i
				lowH := h
				if x > 0 && heightmap[i-1] < lowH {
					low, lowH = i-1, heightmap[i-1]
				}
				if x < size-1 && heightmap[i+1] < lowH {
					low, lowH = i+1, heightmap[i+1]
				}
				if y > 0 && heightmap[i-size] < lowH {
					low, lowH = i-size, heightmap[i-size]
				}
				if y < size-1 && heightmap[i+size] < lowH {
					low, lowH = i+size, heightmap[i+size]
				}

				diff := h - lowH
				if low == i || diff <= talusThreshold {
					continue
				}
				move := (diff - talusThreshold) * 0.25 * (0.9 + 0.2*rng.Float64())
				heightmap[i] -= move
				heightmap[low] += move
			}
		}
	}
}
