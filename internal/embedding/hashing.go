package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultHashingDimensions is the vector length used by NewHashing when dims <= 0.
const DefaultHashingDimensions = 256

// Hashing is an offline provider that hashes padded character trigrams and
// whole words into a fixed number of buckets. Strings sharing many trigrams
// get high cosine similarity. Vectors are stable across restarts.
type Hashing struct {
	dims int
}

// NewHashing returns a Hashing provider with dims buckets.
func NewHashing(dims int) *Hashing {
	if dims <= 0 {
		dims = DefaultHashingDimensions
	}
	return &Hashing{dims: dims}
}

// Name implements Provider.
func (h *Hashing) Name() string { return "hashing" }

// Dimensions returns the vector length.
func (h *Hashing) Dimensions() int { return h.dims }

// Embed implements Provider. It never fails.
func (h *Hashing) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = h.vector(text)
	}
	return vectors, nil
}

func (h *Hashing) vector(text string) []float32 {
	v := make([]float32, h.dims)
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return v
	}

	for _, word := range strings.Fields(text) {
		h.add(v, "w:"+word, 2)
		runes := []rune(" " + word + " ")
		for i := 0; i+3 <= len(runes); i++ {
			h.add(v, string(runes[i:i+3]), 1)
		}
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}

func (h *Hashing) add(v []float32, feature string, weight float32) {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum32()
	idx := int(sum % uint32(h.dims))
	// The high bit picks the sign so that collisions tend to cancel.
	if sum&(1<<31) != 0 {
		v[idx] -= weight
	} else {
		v[idx] += weight
	}
}
