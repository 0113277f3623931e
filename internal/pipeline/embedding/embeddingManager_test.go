package embedding

import (
	"math"
	"testing"
)

func TestPrepare_AlwaysTargetLength(t *testing.T) {
	for _, dim := range []int{0, 1, 3, 128, 384, 768, 3072} {
		v := make([]float32, dim)
		for i := range v {
			v[i] = float32(i%7) - 3
		}
		got := Prepare(v, 384)
		if len(got) != 384 {
			t.Errorf("dim %d: got len %d, want 384", dim, len(got))
		}
	}
}

func TestNormalize_ZeroVectorUnchanged(t *testing.T) {
	v := make([]float32, 10)
	got := Normalize(v)
	if len(got) != 10 {
		t.Fatalf("got len %d", len(got))
	}
	for i, x := range got {
		if x != 0 {
			t.Errorf("index %d = %v, want 0", i, x)
		}
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	got := Normalize([]float32{3, 4})
	if math.Abs(float64(got[0])-0.6) > 1e-6 || math.Abs(float64(got[1])-0.8) > 1e-6 {
		t.Errorf("Normalize([3 4]) = %v, want [0.6 0.8]", got)
	}

	var sum float64
	for _, x := range Normalize([]float32{1, 2, 3, 4, 5}) {
		sum += float64(x * x)
	}
	if math.Abs(sum-1) > 1e-5 {
		t.Errorf("norm^2 = %v, want 1", sum)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []float32{3, 4}
	_ = Normalize(in)
	if in[0] != 3 || in[1] != 4 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestPadTo(t *testing.T) {
	padded := PadTo([]float32{1, 2}, 4)
	want := []float32{1, 2, 0, 0}
	for i := range want {
		if padded[i] != want[i] {
			t.Errorf("pad: got %v, want %v", padded, want)
			break
		}
	}

	trunc := PadTo([]float32{1, 2, 3, 4, 5}, 3)
	if len(trunc) != 3 || trunc[2] != 3 {
		t.Errorf("truncate: got %v, want [1 2 3]", trunc)
	}
}

func TestCosine(t *testing.T) {
	if c := Cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(float64(c)-1) > 1e-6 {
		t.Errorf("identical vectors: %v", c)
	}
	if c := Cosine([]float32{1, 0}, []float32{0, 1}); c != 0 {
		t.Errorf("orthogonal vectors: %v", c)
	}
	if c := Cosine([]float32{0, 0}, []float32{0, 1}); c != 0 {
		t.Errorf("zero vector: %v", c)
	}
}
