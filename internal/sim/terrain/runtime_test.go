package terrain

import (
	"strings"
	"testing"
)

// stubPipeline returns a canned heightmap and records collaborator calls.
type stubPipeline struct {
	hm        []float64
	erodeRuns int
}

func (p *stubPipeline) GenerateHeightmap(size int, profile string) ([]float64, error) {
	return p.hm, nil
}

func (p *stubPipeline) Erode(hm []float64, size, iterations int, seed int64) {
	p.erodeRuns++
}

func (p *stubPipeline) ComputeVisibleChunks(camX, camY float64, chunkSize int) []ChunkKey {
	return nil
}

func TestRuntimeRasterization(t *testing.T) {
	// sea_level 10, height_scale 40 (descriptor defaults).
	hm := []float64{
		2, 8, 10, 40,
		25, 10, 40, 2,
		10, 10, 10, 10,
		40, 40, 40, 40,
	}
	pipe := &stubPipeline{hm: hm}
	gen := NewRuntimeGenerator(pipe, 5)
	st := New(4, 4)
	if err := gen.Generate(st, 1, Biome{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pipe.erodeRuns != 1 {
		t.Fatalf("erode runs = %d, want 1", pipe.erodeRuns)
	}

	// depth 8 > 35% of 10 -> deep lake bed.
	if e, w := st.Elevation(Coord{}), st.Water(Coord{}); e != -3 || w != WaterLake {
		t.Fatalf("sample 2: elev %d water %v", e, w)
	}
	// depth 2 <= 3.5 -> shallow lake.
	if e, w := st.Elevation(Coord{X: 1}), st.Water(Coord{X: 1}); e != -2 || w != WaterLake {
		t.Fatalf("sample 8: elev %d water %v", e, w)
	}
	// At sea level: dry, normalized 0. The beach pass may pull shoreline
	// cells down to -1, so only rule out water.
	if w := st.Water(Coord{X: 2}); w != WaterNone {
		t.Fatalf("sample 10 flooded: %v", w)
	}
	// Top of scale maps to 5.
	if e := st.Elevation(Coord{X: 3}); e != 5 {
		t.Fatalf("sample 40: elev %d, want 5", e)
	}
	// Midpoint 25 -> t=0.5 -> rounds to 3.
	if e := st.Elevation(Coord{X: 0, Y: 1}); e != 3 {
		t.Fatalf("sample 25: elev %d, want 3", e)
	}
}

func TestRuntimeShortHeightmapIsError(t *testing.T) {
	pipe := &stubPipeline{hm: []float64{1, 2, 3}}
	gen := NewRuntimeGenerator(pipe, 0)
	st := New(2, 2)
	err := gen.Generate(st, 1, Biome{})
	if err == nil || !strings.Contains(err.Error(), "heightmap too short") {
		t.Fatalf("err = %v", err)
	}
}

func TestRuntimeNonSquareGridIsError(t *testing.T) {
	gen := NewRuntimeGenerator(&stubPipeline{}, 0)
	if err := gen.Generate(New(4, 8), 1, Biome{}); err == nil {
		t.Fatalf("non-square grid accepted")
	}
}

func TestRuntimeHeightmapNotification(t *testing.T) {
	hm := make([]float64, 16)
	for i := range hm {
		hm[i] = 20
	}
	gen := NewRuntimeGenerator(&stubPipeline{hm: hm}, 0)

	var gotSize int
	var gotSea float64
	var gotLen int
	gen.OnHeightmap(func(heightmap []float64, size int, seaLevel float64) {
		gotLen = len(heightmap)
		gotSize = size
		gotSea = seaLevel
	})

	st := New(4, 4)
	if err := gen.Generate(st, 1, Biome{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotLen != 16 || gotSize != 4 || gotSea != 10 {
		t.Fatalf("notification: len %d size %d sea %v", gotLen, gotSize, gotSea)
	}
}

func TestRuntimeDeterminism(t *testing.T) {
	hm := []float64{5, 12, 18, 30, 9, 11, 22, 35, 10, 14, 26, 38, 2, 16, 28, 40}
	a := New(4, 4)
	b := New(4, 4)
	if err := NewRuntimeGenerator(&stubPipeline{hm: append([]float64(nil), hm...)}, 0).Generate(a, 9, Biome{}); err != nil {
		t.Fatal(err)
	}
	if err := NewRuntimeGenerator(&stubPipeline{hm: append([]float64(nil), hm...)}, 0).Generate(b, 9, Biome{}); err != nil {
		t.Fatal(err)
	}
	if a.Export().BiomeID != b.Export().BiomeID {
		t.Fatalf("biome ids differ")
	}
	ae, be := a.Export(), b.Export()
	if len(ae.Elevation) != len(be.Elevation) || len(ae.Water) != len(be.Water) || len(ae.Features) != len(be.Features) {
		t.Fatalf("runs differ: %+v vs %+v", ae, be)
	}
}
