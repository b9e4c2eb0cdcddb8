package terrain

// Coastline shaping constants: ocean shelf width, beach strip width, and
// how many cells inland buy one step of elevation boost.
const (
	coastShelfWidth  = 6.0
	coastBeachWidth  = 2.0
	coastBoostStride = 15.0
	coastNoiseAmp    = 12.0
)

// carveCoast places an ocean along the left or bottom edge behind a noised
// coastline, with deep and shallow bands, a beach strip at -1, and a
// height boost growing with distance inland.
func (g *Generator) carveCoast() {
	st := g.st
	w, h := st.width, st.height

	alongBottom := g.rng.Intn(2) == 0
	baseDist := 20 + g.rng.Intn(16)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dist, along float64
			if alongBottom {
				dist = float64(h - 1 - y)
				along = float64(x)
			} else {
				dist = float64(x)
				along = float64(y)
			}
			coast := float64(baseDist) + g.detail.At(along*0.08, 0)*coastNoiseAmp

			c := Coord{X: x, Y: y}
			i := y*w + x
			switch {
			case dist < coast-coastShelfWidth:
				st.elevation[i] = -3
				st.water[c] = WaterLake
			case dist < coast:
				st.elevation[i] = -2
				st.water[c] = WaterLake
			case dist < coast+coastBeachWidth:
				st.elevation[i] = -1
			default:
				boost := int((dist - coast) / coastBoostStride)
				st.elevation[i] = int8(clampElevation(int(st.elevation[i]) + boost))
			}
		}
	}
}
