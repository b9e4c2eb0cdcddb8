package noise

import "testing"

func TestFieldDeterministicAndBounded(t *testing.T) {
	a := NewField(1337, 4, 0.045, 0.5)
	b := NewField(1337, 4, 0.045, 0.5)

	var differs bool
	first := a.At(0, 0)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			va := a.At(float64(x), float64(y))
			if vb := b.At(float64(x), float64(y)); va != vb {
				t.Fatalf("same seed differs at %d,%d: %v vs %v", x, y, va, vb)
			}
			if va < -1 || va > 1 {
				t.Fatalf("sample %d,%d out of range: %v", x, y, va)
			}
			if v01 := a.At01(float64(x), float64(y)); v01 < 0 || v01 > 1 {
				t.Fatalf("At01 out of range: %v", v01)
			}
			if va != first {
				differs = true
			}
		}
	}
	if !differs {
		t.Fatalf("field is constant")
	}

	c := NewField(1338, 4, 0.045, 0.5)
	same := true
	for x := 0; x < 32 && same; x++ {
		if a.At(float64(x), 7) != c.At(float64(x), 7) {
			same = false
		}
	}
	if same {
		t.Fatalf("different seeds produced an identical field")
	}
}

func TestFieldDefaults(t *testing.T) {
	f := NewField(1, 0, -1, 0)
	if f.octaves != 1 || f.frequency != 0.05 || f.persistence != 0.5 {
		t.Fatalf("defaults: %+v", f)
	}
}
