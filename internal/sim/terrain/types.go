package terrain

import (
	"fmt"
	"strconv"
	"strings"
)

// Elevation bounds for every cell in the grid.
const (
	MinElevation = -3
	MaxElevation = 5
)

// Coord is one cell in the fixed-size terrain grid.
type Coord struct {
	X int
	Y int
}

func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseKey parses a "x,y" map key. ok is false for malformed keys.
func ParseKey(key string) (Coord, bool) {
	i := strings.IndexByte(key, ',')
	if i <= 0 || i == len(key)-1 {
		return Coord{}, false
	}
	x, err := strconv.Atoi(key[:i])
	if err != nil {
		return Coord{}, false
	}
	y, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return Coord{}, false
	}
	return Coord{X: x, Y: y}, true
}

type WaterType uint8

const (
	WaterNone WaterType = iota
	WaterPond
	WaterLake
	WaterRiver
)

func (w WaterType) String() string {
	switch w {
	case WaterNone:
		return "NONE"
	case WaterPond:
		return "POND"
	case WaterLake:
		return "LAKE"
	case WaterRiver:
		return "RIVER"
	}
	return "UNKNOWN"
}

type FeatureType uint8

const (
	FeatureNone FeatureType = iota
	FeatureTreeSparse
	FeatureTreeDense
	FeatureRockSmall
	FeatureRockLarge
	FeatureBeach
)

func (f FeatureType) String() string {
	switch f {
	case FeatureNone:
		return "NONE"
	case FeatureTreeSparse:
		return "TREE_SPARSE"
	case FeatureTreeDense:
		return "TREE_DENSE"
	case FeatureRockSmall:
		return "ROCK_SMALL"
	case FeatureRockLarge:
		return "ROCK_LARGE"
	case FeatureBeach:
		return "BEACH"
	}
	return "UNKNOWN"
}

// Occupancy answers whether a cell currently carries a building. Terrain
// under a building is immutable; every mutator consults this before acting.
// Implementations must be read-only and must not call back into the State.
type Occupancy interface {
	Occupied(c Coord) bool
}

// OccupancyFunc adapts a plain function to the Occupancy interface.
type OccupancyFunc func(c Coord) bool

func (f OccupancyFunc) Occupied(c Coord) bool { return f(c) }

// ChangeListener receives the set of cells touched by one mutation. Fired
// synchronously before the triggering call returns.
type ChangeListener func(cells []Coord)

// HeightmapListener receives the raw heightmap produced by the runtime
// generation path, for downstream LOD/render consumers.
type HeightmapListener func(heightmap []float64, size int, seaLevel float64)
