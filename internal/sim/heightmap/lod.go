package heightmap

import (
	"math"
	"sort"

	"terrasim.ai/internal/sim/terrain"
)

// ComputeVisibleChunks plans the terrain chunks a renderer at the given
// camera position should hold, nearest first. Ties break on (cx, cy) so
// the order is stable for a fixed camera.
func (p *Pipeline) ComputeVisibleChunks(camX, camY float64, chunkSize int) []terrain.ChunkKey {
	if chunkSize <= 0 {
		chunkSize = 16
	}
	radius := p.ViewRadius
	if radius <= 0 {
		radius = 4
	}
	ccx := int(math.Floor(camX / float64(chunkSize)))
	ccy := int(math.Floor(camY / float64(chunkSize)))

	type item struct {
		k    terrain.ChunkKey
		dist int
	}
	items := make([]item, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := absInt(dx) + absInt(dy)
			items = append(items, item{
				k:    terrain.ChunkKey{CX: ccx + dx, CY: ccy + dy},
				dist: d,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].dist != items[j].dist {
			return items[i].dist < items[j].dist
		}
		if items[i].k.CX != items[j].k.CX {
			return items[i].k.CX < items[j].k.CX
		}
		return items[i].k.CY < items[j].k.CY
	})
	out := make([]terrain.ChunkKey, 0, len(items))
	for _, it := range items {
		out = append(out, it.k)
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
