package terrain

// Blob is the persistable keyed form of the terrain maps. Coordinates are
// encoded as "x,y" strings because the persistence format cannot key on
// composite values. Only populated cells are listed; anything absent
// resumes its default on load.
type Blob struct {
	Elevation map[string]int `json:"elevation"`
	Water     map[string]int `json:"water"`
	Features  map[string]int `json:"features"`
	BiomeID   string         `json:"biome_id"`
}

// Export snapshots the full terrain. Elevation lists only nonzero cells;
// water and features list every populated cell.
func (s *State) Export() Blob {
	b := Blob{
		Elevation: map[string]int{},
		Water:     map[string]int{},
		Features:  map[string]int{},
		BiomeID:   s.biomeID,
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if e := s.elevation[y*s.width+x]; e != 0 {
				b.Elevation[Coord{X: x, Y: y}.Key()] = int(e)
			}
		}
	}
	for c, w := range s.water {
		b.Water[c.Key()] = int(w)
	}
	for c, f := range s.features {
		b.Features[c.Key()] = int(f)
	}
	return b
}

// Import replaces the terrain wholesale from a blob, discarding prior
// content. Malformed keys, out-of-bounds coordinates, and out-of-range
// values are skipped silently; unlisted cells take their defaults.
func (s *State) Import(b Blob) {
	s.reset()
	for key, v := range b.Elevation {
		c, ok := ParseKey(key)
		if !ok || !s.InBounds(c) || v < MinElevation || v > MaxElevation {
			continue
		}
		s.elevation[s.idx(c)] = int8(v)
	}
	for key, v := range b.Water {
		c, ok := ParseKey(key)
		if !ok || !s.InBounds(c) || v <= int(WaterNone) || v > int(WaterRiver) {
			continue
		}
		s.water[c] = WaterType(v)
	}
	for key, v := range b.Features {
		c, ok := ParseKey(key)
		if !ok || !s.InBounds(c) || v <= int(FeatureNone) || v > int(FeatureBeach) {
			continue
		}
		s.features[c] = FeatureType(v)
	}
	s.biomeID = b.BiomeID
}
