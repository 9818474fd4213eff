package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	mu      sync.Mutex
	batches [][]string
	err     error
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]string(nil), texts...))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Embed(context.Background(), []string{"go"})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = Unavailable{Reason: "no api key"}.Embed(context.Background(), []string{"go"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "no api key")
}

func TestGemini_BatchesPreserveOrder(t *testing.T) {
	fake := &fakeEmbedder{}
	g := NewGemini(fake, "text-embedding-004")
	g.batchSize = 2

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := g.Embed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		assert.Equal(t, float32(len(text)), vectors[i][0])
	}
	assert.Len(t, fake.batches, 3)
	assert.Equal(t, "gemini:text-embedding-004", g.Name())
}

func TestGemini_FailureIsUnavailable(t *testing.T) {
	g := NewGemini(&fakeEmbedder{err: errors.New("403 forbidden")}, "m")

	_, err := g.Embed(context.Background(), []string{"python"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "403 forbidden")
}

func TestGemini_EmptyInput(t *testing.T) {
	fake := &fakeEmbedder{}
	vectors, err := NewGemini(fake, "m").Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, fake.batches)
}

func TestHashing_DeterministicAndNormalized(t *testing.T) {
	h := NewHashing(0)
	assert.Equal(t, DefaultHashingDimensions, h.Dimensions())

	first, err := h.Embed(context.Background(), []string{"kubernetes", "Kubernetes "})
	require.NoError(t, err)
	second, err := NewHashing(0).Embed(context.Background(), []string{"kubernetes"})
	require.NoError(t, err)

	assert.Equal(t, first[0], second[0])
	assert.Equal(t, first[0], first[1])
	assert.InDelta(t, 1.0, cosine(first[0], first[0]), 1e-6)
}

func TestHashing_SimilarStringsScoreHigher(t *testing.T) {
	vectors, err := NewHashing(512).Embed(context.Background(), []string{"react", "react native", "postgresql"})
	require.NoError(t, err)

	related := cosine(vectors[0], vectors[1])
	unrelated := cosine(vectors[0], vectors[2])
	assert.Greater(t, related, unrelated)
}

func TestHashing_EmptyStringIsZeroVector(t *testing.T) {
	vectors, err := NewHashing(8).Embed(context.Background(), []string{""})
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 8), vectors[0])
}

type countingProvider struct {
	calls atomic.Int32
	texts atomic.Int32
	err   error
}

func (c *countingProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.calls.Add(1)
	c.texts.Add(int32(len(texts)))
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t))}
	}
	return out, nil
}

func (c *countingProvider) Name() string { return "counting" }

func TestCached_OnlyEmbedsMissingStrings(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCached(inner)

	_, err := cached.Embed(context.Background(), []string{"go", "sql", "go"})
	require.NoError(t, err)
	vectors, err := cached.Embed(context.Background(), []string{"sql", "python"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, int32(3), inner.texts.Load())
	assert.Equal(t, []float32{3}, vectors[0])
	assert.Equal(t, []float32{6}, vectors[1])
	assert.Equal(t, 3, cached.Len())
	assert.Equal(t, "counting", cached.Name())
}

func TestCached_ReturnsCopies(t *testing.T) {
	cached := NewCached(&countingProvider{})

	first, err := cached.Embed(context.Background(), []string{"go"})
	require.NoError(t, err)
	first[0][0] = 99

	second, err := cached.Embed(context.Background(), []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, second[0])
}

func TestCached_PropagatesErrors(t *testing.T) {
	cached := NewCached(&countingProvider{err: fmt.Errorf("%w: offline", ErrUnavailable)})

	_, err := cached.Embed(context.Background(), []string{"go"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, cached.Len())
}

func TestCached_ConcurrentUse(t *testing.T) {
	cached := NewCached(NewHashing(64))
	texts := []string{"go", "rust", "python", "java"}

	var wg sync.WaitGroup
	results := make([][][]float32, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cached.Embed(context.Background(), texts)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}
