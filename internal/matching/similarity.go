// Package matching classifies required skills against candidate skills by pairwise similarity.
package matching

import (
	"context"
	"math"
	"strings"

	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/logger"
	"go.uber.org/zap"
)

// Heuristic similarity values.
const (
	exactMatchScore     = 1.0
	substringMatchScore = 0.7
	noMatchScore        = 0.0
)

// SourceHeuristic names the string-overlap similarity source.
const SourceHeuristic = "heuristic"

// SimilarityProvider scores two skills in [0, 1]. Scores are symmetric and a
// skill compared with itself scores 1.
type SimilarityProvider interface {
	Score(a, b string) float64
	Source() string
}

// HeuristicSimilarity scores identical strings 1.0, strings where one contains
// the other 0.7, and everything else 0.
type HeuristicSimilarity struct{}

// Score implements SimilarityProvider.
func (HeuristicSimilarity) Score(a, b string) float64 {
	switch {
	case a == b:
		return exactMatchScore
	case a == "" || b == "":
		return noMatchScore
	case strings.Contains(a, b) || strings.Contains(b, a):
		return substringMatchScore
	default:
		return noMatchScore
	}
}

// Source implements SimilarityProvider.
func (HeuristicSimilarity) Source() string { return SourceHeuristic }

// EmbeddingSimilarity scores skills by the cosine of their vectors, clamped to [0, 1].
type EmbeddingSimilarity struct {
	vectors  map[string][]float32
	provider string
}

// NewEmbeddingSimilarity pairs skills[i] with vectors[i].
func NewEmbeddingSimilarity(skills []string, vectors [][]float32, provider string) *EmbeddingSimilarity {
	m := make(map[string][]float32, len(skills))
	for i, s := range skills {
		if i < len(vectors) {
			m[s] = vectors[i]
		}
	}
	return &EmbeddingSimilarity{vectors: m, provider: provider}
}

// Score implements SimilarityProvider. Skills without a vector, or with a zero
// vector, score 0 against anything but themselves.
func (e *EmbeddingSimilarity) Score(a, b string) float64 {
	if a == b {
		return exactMatchScore
	}
	return clamp01(cosine(e.vectors[a], e.vectors[b]))
}

// Source implements SimilarityProvider.
func (e *EmbeddingSimilarity) Source() string { return "embedding:" + e.provider }

// SelectSimilarity embeds skills once and returns the embedding-backed
// provider, or the heuristic one when the provider is missing or unavailable.
// The choice holds for the whole run.
func SelectSimilarity(ctx context.Context, provider embedding.Provider, skills []string, log *zap.Logger) SimilarityProvider {
	log = logger.OrNop(log)
	if provider == nil {
		return HeuristicSimilarity{}
	}

	vectors, err := provider.Embed(ctx, skills)
	if err != nil {
		log.Warn("embeddings unavailable, using heuristic similarity",
			zap.String(logger.FieldProvider, provider.Name()),
			zap.Error(err))
		return HeuristicSimilarity{}
	}
	if len(vectors) != len(skills) {
		log.Warn("embedding count mismatch, using heuristic similarity",
			zap.String(logger.FieldProvider, provider.Name()),
			zap.Int("skills", len(skills)),
			zap.Int("vectors", len(vectors)))
		return HeuristicSimilarity{}
	}
	return NewEmbeddingSimilarity(skills, vectors, provider.Name())
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
