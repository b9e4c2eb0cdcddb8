package heightmap

import (
	"testing"

	"terrasim.ai/internal/sim/terrain"
)

func TestGenerateHeightmapDeterministic(t *testing.T) {
	a, err := New(42).GenerateHeightmap(32, "river")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(42).GenerateHeightmap(32, "river")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32*32 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	c, err := New(43).GenerateHeightmap(32, "river")
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical heightmaps")
	}
}

func TestGenerateHeightmapProfiles(t *testing.T) {
	p := New(7)
	for _, profile := range []string{"", "river", "coastal", "mesa", "unknown"} {
		hm, err := p.GenerateHeightmap(16, profile)
		if err != nil {
			t.Fatalf("profile %q: %v", profile, err)
		}
		if len(hm) != 256 {
			t.Fatalf("profile %q: len %d", profile, len(hm))
		}
	}
	if _, err := p.GenerateHeightmap(0, ""); err == nil {
		t.Fatalf("size 0 accepted")
	}
}

func TestErodeConservesMassAndSmooths(t *testing.T) {
	const size = 8
	hm := make([]float64, size*size)
	hm[3*size+3] = 30 // a single spike

	var before float64
	for _, v := range hm {
		before += v
	}

	p := New(1)
	p.Erode(hm, size, 10, 99)

	var after, peak float64
	for _, v := range hm {
		after += v
		if v > peak {
			peak = v
		}
	}
	if diff := before - after; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("mass not conserved: %v -> %v", before, after)
	}
	if peak >= 30 {
		t.Fatalf("spike not smoothed: peak %v", peak)
	}
}

func TestErodeDeterministic(t *testing.T) {
	const size = 16
	mk := func() []float64 {
		hm, err := New(5).GenerateHeightmap(size, "mesa")
		if err != nil {
			t.Fatal(err)
		}
		return hm
	}
	a, b := mk(), mk()
	p := New(5)
	p.Erode(a, size, 8, 123)
	p.Erode(b, size, 8, 123)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs after erosion", i)
		}
	}
}

func TestErodeIgnoresBadInput(t *testing.T) {
	hm := []float64{1, 2, 3}
	New(1).Erode(hm, 4, 5, 1) // too short, must not panic
	if hm[0] != 1 || hm[1] != 2 || hm[2] != 3 {
		t.Fatalf("short heightmap mutated")
	}
}

func TestComputeVisibleChunksOrdering(t *testing.T) {
	p := New(1)
	p.ViewRadius = 2
	got := p.ComputeVisibleChunks(40, 40, 16) // camera chunk (2,2)

	if len(got) != 25 {
		t.Fatalf("len = %d, want 25", len(got))
	}
	if got[0] != (terrain.ChunkKey{CX: 2, CY: 2}) {
		t.Fatalf("nearest chunk %+v", got[0])
	}
	prev := -1
	seen := map[terrain.ChunkKey]bool{}
	for _, k := range got {
		if seen[k] {
			t.Fatalf("duplicate chunk %+v", k)
		}
		seen[k] = true
		d := absInt(k.CX-2) + absInt(k.CY-2)
		if d < prev {
			t.Fatalf("ordering regressed at %+v", k)
		}
		prev = d
	}
}

func TestComputeVisibleChunksNegativeCamera(t *testing.T) {
	p := New(1)
	p.ViewRadius = 1
	got := p.ComputeVisibleChunks(-1, -1, 16) // floor(-1/16) = -1
	if got[0] != (terrain.ChunkKey{CX: -1, CY: -1}) {
		t.Fatalf("nearest chunk %+v", got[0])
	}
}
