package terrain

import "sort"

// State is the authoritative per-cell terrain model: a dense elevation
// grid plus sparse water and feature maps. All methods are synchronous and
// the struct carries no locking; one logical caller at a time is assumed.
type State struct {
	width  int
	height int

	elevation []int8
	water     map[Coord]WaterType
	features  map[Coord]FeatureType

	biomeID string

	occupancy Occupancy
	listeners []ChangeListener
}

// New returns a state with every cell at elevation 0, no water, no features.
func New(width, height int) *State {
	if width <= 0 {
		width = 128
	}
	if height <= 0 {
		height = 128
	}
	return &State{
		width:     width,
		height:    height,
		elevation: make([]int8, width*height),
		water:     map[Coord]WaterType{},
		features:  map[Coord]FeatureType{},
	}
}

func (s *State) Width() int  { return s.width }
func (s *State) Height() int { return s.height }

func (s *State) BiomeID() string        { return s.biomeID }
func (s *State) SetBiomeID(id string)   { s.biomeID = id }
func (s *State) SetOccupancy(o Occupancy) { s.occupancy = o }

// OnChange registers a listener for terrain mutations. Listeners fire
// synchronously before the mutating call returns.
func (s *State) OnChange(fn ChangeListener) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < s.width && c.Y >= 0 && c.Y < s.height
}

func (s *State) idx(c Coord) int { return c.Y*s.width + c.X }

func (s *State) occupied(c Coord) bool {
	return s.occupancy != nil && s.occupancy.Occupied(c)
}

// Elevation returns the cell elevation, 0 for out-of-bounds coordinates.
func (s *State) Elevation(c Coord) int {
	if !s.InBounds(c) {
		return 0
	}
	return int(s.elevation[s.idx(c)])
}

// ElevationGrid returns a row-major copy of the dense elevation grid.
func (s *State) ElevationGrid() []int8 {
	out := make([]int8, len(s.elevation))
	copy(out, s.elevation)
	return out
}

// Water returns the water type at c; absence means WaterNone.
func (s *State) Water(c Coord) WaterType {
	if !s.InBounds(c) {
		return WaterNone
	}
	return s.water[c]
}

// Feature returns the feature at c; absence means FeatureNone.
func (s *State) Feature(c Coord) FeatureType {
	if !s.InBounds(c) {
		return FeatureNone
	}
	return s.features[c]
}

func clampElevation(v int) int {
	if v < MinElevation {
		return MinElevation
	}
	if v > MaxElevation {
		return MaxElevation
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func neighbors4(c Coord) [4]Coord {
	return [4]Coord{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// SetElevation sets the elevation at c, clamped to [MinElevation,
// MaxElevation]. Out-of-bounds or occupied cells are silent no-ops.
// Changing elevation by more than 2 strips any feature; raising a cell
// above -2 strips its water. The beach pass then runs on c and its
// 4-neighbors, and listeners receive every touched cell.
func (s *State) SetElevation(c Coord, v int) {
	if !s.InBounds(c) || s.occupied(c) {
		return
	}
	v = clampElevation(v)
	i := s.idx(c)
	old := int(s.elevation[i])
	if v == old {
		return
	}
	s.elevation[i] = int8(v)

	changed := map[Coord]struct{}{c: {}}
	if absInt(v-old) > 2 {
		delete(s.features, c)
	}
	if v > -2 {
		delete(s.water, c)
	}
	s.recomputeBeach(c, changed)
	s.notify(changed)
}

// SetWater sets the water type at c. Non-None water forces the elevation
// down to its tier (Lake -3, Pond/River at most -2). Clearing water raises
// a negative elevation back to 0. Out-of-bounds or occupied cells are
// silent no-ops.
func (s *State) SetWater(c Coord, t WaterType) {
	if !s.InBounds(c) || s.occupied(c) {
		return
	}
	i := s.idx(c)
	old := int(s.elevation[i])
	cur := s.water[c]

	if t == WaterNone {
		if cur == WaterNone {
			return
		}
		delete(s.water, c)
		changed := map[Coord]struct{}{c: {}}
		if old < 0 {
			s.elevation[i] = 0
			if absInt(old) > 2 {
				delete(s.features, c)
			}
		}
		s.recomputeBeach(c, changed)
		s.notify(changed)
		return
	}

	target := old
	switch t {
	case WaterLake:
		target = MinElevation
	case WaterPond, WaterRiver:
		if old > -2 {
			target = -2
		}
	}
	if cur == t && target == old {
		return
	}
	s.water[c] = t
	if target != old {
		s.elevation[i] = int8(target)
		if absInt(target-old) > 2 {
			delete(s.features, c)
		}
	}
	changed := map[Coord]struct{}{c: {}}
	s.recomputeBeach(c, changed)
	s.notify(changed)
}

// SetFeature sets the feature at c. Beach is only accepted on cells at
// elevation -1. Out-of-bounds or occupied cells are silent no-ops.
func (s *State) SetFeature(c Coord, f FeatureType) {
	if !s.InBounds(c) || s.occupied(c) {
		return
	}
	if f == FeatureBeach && s.Elevation(c) != -1 {
		return
	}
	if s.features[c] == f {
		return
	}
	if f == FeatureNone {
		delete(s.features, c)
	} else {
		s.features[c] = f
	}
	s.notify(map[Coord]struct{}{c: {}})
}

// Raise bumps the elevation at c by one step.
func (s *State) Raise(c Coord) { s.SetElevation(c, s.Elevation(c)+1) }

// Lower drops the elevation at c by one step.
func (s *State) Lower(c Coord) { s.SetElevation(c, s.Elevation(c)-1) }

// Flatten resets the elevation at c to 0.
func (s *State) Flatten(c Coord) { s.SetElevation(c, 0) }

// ToggleWater flips a cell between no water and a pond.
func (s *State) ToggleWater(c Coord) {
	if s.Water(c) == WaterNone {
		s.SetWater(c, WaterPond)
	} else {
		s.SetWater(c, WaterNone)
	}
}

// ToggleFeature sets f at c, or clears it if f is already present.
func (s *State) ToggleFeature(c Coord, f FeatureType) {
	if s.Feature(c) == f {
		s.SetFeature(c, FeatureNone)
	} else {
		s.SetFeature(c, f)
	}
}

// recomputeBeach applies the beach rules to center and its 4-neighbors:
// a dry cell at elevation -1 or 0 next to water is forced to -1 and gains
// a Beach feature (pre-existing non-Beach features are kept as-is); a
// Beach cell loses the feature when it is no longer next to water or its
// elevation has left the -1/0 band. Occupied cells are left untouched.
func (s *State) recomputeBeach(center Coord, changed map[Coord]struct{}) {
	nb := neighbors4(center)
	cells := [5]Coord{center, nb[0], nb[1], nb[2], nb[3]}
	for _, n := range cells {
		if !s.InBounds(n) || s.occupied(n) {
			continue
		}
		if s.water[n] != WaterNone {
			continue
		}
		adj := false
		for _, nn := range neighbors4(n) {
			if s.InBounds(nn) && s.water[nn] != WaterNone {
				adj = true
				break
			}
		}
		i := s.idx(n)
		e := int(s.elevation[i])
		f := s.features[n]
		if adj {
			if e != -1 && e != 0 {
				if f == FeatureBeach {
					delete(s.features, n)
					changed[n] = struct{}{}
				}
				continue
			}
			if e != -1 {
				s.elevation[i] = -1
				changed[n] = struct{}{}
			}
			if f == FeatureNone {
				s.features[n] = FeatureBeach
				changed[n] = struct{}{}
			}
		} else if f == FeatureBeach {
			delete(s.features, n)
			changed[n] = struct{}{}
		}
	}
}

func (s *State) notify(changed map[Coord]struct{}) {
	if len(s.listeners) == 0 || len(changed) == 0 {
		return
	}
	cells := make([]Coord, 0, len(changed))
	for c := range changed {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	for _, fn := range s.listeners {
		fn(cells)
	}
}

// reset clears every map back to the freshly-created condition. Generators
// call this before writing a new world so the swap is wholesale.
func (s *State) reset() {
	for i := range s.elevation {
		s.elevation[i] = 0
	}
	s.water = map[Coord]WaterType{}
	s.features = map[Coord]FeatureType{}
	s.biomeID = ""
}
