package terrain

import "math"

// carveRiver cuts a meandering channel across the full grid width: a -3
// deep line at the centerline ±1, a -2 band out to the channel half-width,
// and a flood plain capped at -1 beyond that. A handful of irregular ponds
// land near the centerline afterwards.
func (g *Generator) carveRiver() {
	st := g.st
	w, h := st.width, st.height

	margin := 8
	if h <= 2*margin+1 {
		margin = h / 4
	}
	startY := margin + g.rng.Intn(maxInt(1, h-2*margin))
	chWidth := 3 + g.rng.Intn(3)
	freq := 0.03 + g.rng.Float64()*0.04
	amp := float64(h) * (0.10 + g.rng.Float64()*0.08)

	halfW := chWidth / 2
	centers := make([]int, w)
	for x := 0; x < w; x++ {
		jitter := g.detail.At(float64(x)*0.15, float64(startY)) * 2
		cy := float64(startY) + math.Sin(float64(x)*freq)*amp + jitter
		y := int(math.Round(cy))
		if y < 2 {
			y = 2
		}
		if y > h-3 {
			y = h - 3
		}
		centers[x] = y

		for dy := -(3 + halfW); dy <= 3+halfW; dy++ {
			yy := y + dy
			if yy < 0 || yy >= h {
				continue
			}
			c := Coord{X: x, Y: yy}
			i := yy*w + x
			switch d := absInt(dy); {
			case d <= 1:
				st.elevation[i] = -3
				st.water[c] = WaterRiver
			case d <= 1+halfW:
				st.elevation[i] = -2
				st.water[c] = WaterRiver
			default:
				if st.elevation[i] > -1 {
					st.elevation[i] = -1
				}
			}
		}
	}

	ponds := 3 + g.rng.Intn(4)
	for k := 0; k < ponds; k++ {
		px := g.rng.Intn(w)
		py := centers[px] + g.rng.Intn(17) - 8
		r := 4 + g.rng.Intn(5)
		g.carvePond(px, py, r, true)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
