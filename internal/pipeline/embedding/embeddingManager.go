package embedding

import (
	"context"
	"math"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Normalize scales v to unit length. A zero vector comes back unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		copy(out, v)
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// PadTo truncates trailing dims or appends zeros so len(result) == target.
func PadTo(v []float32, target int) []float32 {
	out := make([]float32, target)
	copy(out, v)
	return out
}

// Prepare is what every vector goes through before it touches the index.
func Prepare(v []float32, target int) []float32 {
	return PadTo(Normalize(v), target)
}

func Cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
