package terrain

// Building types allowed on water cells and shallow water elevations.
var waterInfrastructure = map[string]struct{}{
	"bridge":             {},
	"dock":               {},
	"water_pump":         {},
	"large_water_pump":   {},
	"desalination_plant": {},
}

// BuildResult is the outcome of a buildability query. Reason is empty when
// OK; otherwise it names the first failing rule and Cell the cell that
// tripped it.
type BuildResult struct {
	OK     bool
	Reason string
	Cell   Coord
}

func fail(c Coord, reason string) BuildResult {
	return BuildResult{Reason: reason, Cell: c}
}

// IsBuildable evaluates whether a width×height footprint anchored at
// anchor may be placed, given the terrain and the occupancy collaborator.
// Cells are visited row-major; the first failing cell short-circuits.
func (s *State) IsBuildable(anchor Coord, width, height int, buildingType string) BuildResult {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c := Coord{X: anchor.X + dx, Y: anchor.Y + dy}
			if !s.InBounds(c) {
				return fail(c, "outside bounds")
			}
			if s.occupied(c) {
				return fail(c, "occupied")
			}
			e := s.Elevation(c)
			switch {
			case e == -3:
				return fail(c, "deep water")
			case e == -2 || s.Water(c) != WaterNone:
				if _, ok := waterInfrastructure[buildingType]; !ok {
					return fail(c, "water infrastructure only")
				}
			case e == -1:
				if width > 2 || height > 2 {
					return fail(c, "beach/wetland too large")
				}
			case e == 5:
				return fail(c, "mountain peak")
			case e == 4:
				if width > 2 || height > 2 {
					return fail(c, "steep terrain too large")
				}
			case e == 3:
				if width > 3 || height > 3 {
					return fail(c, "hillside too large")
				}
			}
		}
	}
	return BuildResult{OK: true}
}
