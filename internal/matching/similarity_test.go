package matching

import (
	"context"
	"testing"

	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicSimilarity(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"python", "python", 1.0},
		{"react", "react native", 0.7},
		{"react native", "react", 0.7},
		{"sql", "mysql", 0.7},
		{"java", "python", 0.0},
		{"", "go", 0.0},
	}

	h := HeuristicSimilarity{}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, h.Score(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestEmbeddingSimilarity(t *testing.T) {
	e := NewEmbeddingSimilarity(
		[]string{"a", "b", "c", "zero"},
		[][]float32{{1, 0}, {0, 1}, {2, 0}, {0, 0}},
		"test",
	)

	assert.Equal(t, 1.0, e.Score("a", "a"))
	assert.Equal(t, 0.0, e.Score("a", "b"))
	assert.InDelta(t, 1.0, e.Score("a", "c"), 1e-9)
	assert.Equal(t, 0.0, e.Score("a", "zero"))
	assert.Equal(t, 0.0, e.Score("a", "unknown"))
	assert.Equal(t, 1.0, e.Score("zero", "zero"))
	assert.Equal(t, "embedding:test", e.Source())
}

func TestSelectSimilarity(t *testing.T) {
	skills := []string{"go", "rust"}

	assert.Equal(t, SourceHeuristic, SelectSimilarity(context.Background(), nil, skills, nil).Source())
	assert.Equal(t, SourceHeuristic, SelectSimilarity(context.Background(), embedding.Unavailable{}, skills, nil).Source())
	assert.Equal(t, "embedding:hashing", SelectSimilarity(context.Background(), embedding.NewHashing(16), skills, nil).Source())

	mismatch := SelectSimilarity(context.Background(), shortProvider{}, skills, nil)
	assert.Equal(t, SourceHeuristic, mismatch.Source())
}

type shortProvider struct{}

func (shortProvider) Embed(context.Context, []string) ([][]float32, error) {
	return [][]float32{{1}}, nil
}

func (shortProvider) Name() string { return "short" }

func TestSimilarityMatrix_SymmetricWithUnitDiagonal(t *testing.T) {
	skills := types.NewSkillSet("react native", "sql").Union(types.NewSkillSet("react", "mysql")).Items()
	m := NewSimilarityMatrix(skills, HeuristicSimilarity{})

	require.Equal(t, 4, m.Size())
	assert.Equal(t, []string{"react native", "sql", "react", "mysql"}, m.Skills())
	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := 0; j < m.Size(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}

	score, ok := m.Between("react", "react native")
	assert.True(t, ok)
	assert.Equal(t, 0.7, score)

	_, ok = m.Between("react", "vue")
	assert.False(t, ok)
}

func TestThresholds(t *testing.T) {
	assert.Equal(t, types.TierHigh, DefaultThresholds.Classify(0.81))
	assert.Equal(t, types.TierPartial, DefaultThresholds.Classify(0.8))
	assert.Equal(t, types.TierPartial, DefaultThresholds.Classify(0.7))
	assert.Equal(t, types.TierMissing, DefaultThresholds.Classify(0.5))
	assert.Equal(t, types.TierMissing, DefaultThresholds.Classify(0))

	assert.Equal(t, types.TierHigh, SimplifiedThresholds.Classify(0.75))
	assert.Equal(t, types.TierPartial, SimplifiedThresholds.Classify(0.7))
	assert.Equal(t, types.TierMissing, SimplifiedThresholds.Classify(0.3))

	preset, err := ThresholdsForPreset("Simplified")
	require.NoError(t, err)
	assert.Equal(t, SimplifiedThresholds, preset)

	preset, err = ThresholdsForPreset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThresholds, preset)

	_, err = ThresholdsForPreset("strict")
	assert.Error(t, err)

	assert.NoError(t, DefaultThresholds.Validate())
	assert.Error(t, Thresholds{High: 0.5, Partial: 0.5}.Validate())
	assert.Error(t, Thresholds{High: 1.2, Partial: 0.5}.Validate())
}
