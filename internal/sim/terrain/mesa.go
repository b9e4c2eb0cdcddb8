package terrain

import "math"

// raiseMesas places flat-topped plateaus with a noised radial boundary, a
// steep cliff ring and a talus slope ring (rings only ever raise existing
// terrain), then carves shallow arroyos between them.
func (g *Generator) raiseMesas() {
	st := g.st
	w, h := st.width, st.height

	raiseTo := func(i int, v int) {
		if int(st.elevation[i]) < v {
			st.elevation[i] = int8(clampElevation(v))
		}
	}

	plateaus := 4 + g.rng.Intn(4)
	for k := 0; k < plateaus; k++ {
		cx := g.rng.Intn(w)
		cy := g.rng.Intn(h)
		r := 8 + g.rng.Intn(11)
		top := 3 + g.rng.Intn(3)
		wobblePhase := float64(k) * 57.0

		for yy := cy - r - 4; yy <= cy+r+4; yy++ {
			for xx := cx - r - 4; xx <= cx+r+4; xx++ {
				if xx < 0 || xx >= w || yy < 0 || yy >= h {
					continue
				}
				d := math.Hypot(float64(xx-cx), float64(yy-cy))
				reff := float64(r) * (0.8 + 0.4*g.detail.At01(float64(xx)*0.1+wobblePhase, float64(yy)*0.1))
				i := yy*w + xx
				switch {
				case d <= reff:
					raiseTo(i, top)
				case d <= reff+2:
					raiseTo(i, top-2)
				case d <= reff+4:
					raiseTo(i, maxInt(1, top-3))
				}
			}
		}
	}

	arroyos := 2 + g.rng.Intn(3)
	for k := 0; k < arroyos; k++ {
		x := g.rng.Intn(maxInt(1, w/2))
		y := g.rng.Intn(h)
		length := w/2 + g.rng.Intn(maxInt(1, w/2))
		for step := 0; step < length && x < w; step++ {
			i := y*w + x
			carved := int(st.elevation[i]) - 2
			if carved < 0 {
				carved = 0
			}
			if carved < int(st.elevation[i]) {
				st.elevation[i] = int8(carved)
			}
			x++
			y += g.rng.Intn(3) - 1
			if y < 0 {
				y = 0
			}
			if y >= h {
				y = h - 1
			}
		}
	}
}
