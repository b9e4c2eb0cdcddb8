package terrain

// HasWaterNearby reports whether any cell within the Chebyshev square of
// the given radius around c holds water.
func (s *State) HasWaterNearby(c Coord, radius int) bool {
	if radius < 0 {
		return false
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			n := Coord{X: c.X + dx, Y: c.Y + dy}
			if s.InBounds(n) && s.water[n] != WaterNone {
				return true
			}
		}
	}
	return false
}

// IsFloodProne reports whether c sits at or below the waterline, or at
// grade level with water within radius 3.
func (s *State) IsFloodProne(c Coord) bool {
	e := s.Elevation(c)
	if e <= -1 {
		return true
	}
	return e == 0 && s.HasWaterNearby(c, 3)
}

// FloodSeverity scores flood risk at c in [0,1]. The base value comes from
// elevation alone; nearby water within radius 2 amplifies it by 1.3, capped
// at 1.0.
func (s *State) FloodSeverity(c Coord) float64 {
	var base float64
	switch e := s.Elevation(c); {
	case e <= -2:
		base = 1.0
	case e == -1:
		base = 0.7
	case e == 0:
		base = 0.3
	case e == 1:
		base = 0.1
	default:
		base = 0.0
	}
	if base > 0 && s.HasWaterNearby(c, 2) {
		base *= 1.3
		if base > 1.0 {
			base = 1.0
		}
	}
	return base
}
