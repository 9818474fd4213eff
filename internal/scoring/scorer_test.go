package scoring

import (
	"testing"

	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultWith(high, partial, missing int, overall float64) *types.SkillAnalysisResult {
	r := types.NewSkillAnalysisResult()
	for i := 0; i < high; i++ {
		r.Add(types.SkillMatch{JobSkill: "h", Tier: types.TierHigh, Similarity: 1})
	}
	for i := 0; i < partial; i++ {
		r.Add(types.SkillMatch{JobSkill: "p", Tier: types.TierPartial, Similarity: 0.7})
	}
	for i := 0; i < missing; i++ {
		r.Add(types.SkillMatch{JobSkill: "m", Tier: types.TierMissing})
	}
	r.OverallMatchPercent = overall
	return r
}

func TestScore_WeightedBlend(t *testing.T) {
	report := NewScorer(DefaultWeights).Score(resultWith(4, 0, 1, 80), 0.5, 0.5)

	assert.Equal(t, 0.0, report.SentimentDivergence)
	assert.Equal(t, 100.0, report.SentimentScore)
	assert.InDelta(t, 86.0, report.CompatibilityScore, 1e-9)
	assert.Equal(t, types.BandExcellent, report.Assessment.Band)
}

func TestScore_SubstringPartialGap(t *testing.T) {
	report := NewScorer(DefaultWeights).Score(resultWith(0, 1, 0, 50), 0, 0)

	assert.Equal(t, 50.0, report.SkillGapPercent)
	assert.Equal(t, 50.0, report.SkillCoveragePercent)
}

func TestSkillGapAndCoverage_SumTo100(t *testing.T) {
	cases := [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {3, 2, 5}, {7, 1, 1}, {0, 3, 3}}

	for _, c := range cases {
		r := resultWith(c[0], c[1], c[2], 0)
		assert.InDelta(t, 100.0, SkillGapPercent(r)+SkillCoveragePercent(r), 1e-9, "%v", c)
	}
}

func TestSkillGapAndCoverage_ZeroRequired(t *testing.T) {
	r := types.NewSkillAnalysisResult()

	assert.Equal(t, 0.0, SkillGapPercent(r))
	assert.Equal(t, 0.0, SkillCoveragePercent(r))

	report := NewScorer(DefaultWeights).Score(r, 0, 0)
	assert.Equal(t, 0.0, report.SkillGapPercent)
	assert.Equal(t, 0.0, report.SkillCoveragePercent)
	assert.Equal(t, types.Distribution{}, report.Distribution)
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		resume, job, divergence, score float64
	}{
		{0.5, 0.5, 0, 100},
		{0.9, 0.4, 0.5, 50},
		{-0.2, 0.3, 0.5, 50},
		{1, -1, 2, 0},
		{0.1, -0.9, 1, 0},
	}

	for _, tt := range tests {
		d := SentimentDivergence(tt.resume, tt.job)
		assert.InDelta(t, tt.divergence, d, 1e-9)
		assert.InDelta(t, tt.score, SentimentScore(d), 1e-9)
	}
}

func TestCompatibility_Monotonic(t *testing.T) {
	s := NewScorer(DefaultWeights)

	prev := -1.0
	for overall := 0.0; overall <= 100; overall += 5 {
		c := s.Compatibility(overall, SentimentScore(0.4))
		assert.GreaterOrEqual(t, c, prev)
		prev = c
	}

	prev = 101.0
	for d := 0.0; d <= 2.0; d += 0.1 {
		c := s.Compatibility(60, SentimentScore(d))
		assert.LessOrEqual(t, c, prev)
		prev = c
	}
}

func TestCompatibility_Clamped(t *testing.T) {
	s := NewScorer(Weights{Skill: 1, Sentiment: 1})
	assert.Equal(t, 100.0, s.Compatibility(100, 100))
	assert.Equal(t, 0.0, s.Compatibility(-50, 0))
}

func TestSkillOnlyWeights(t *testing.T) {
	report := NewScorer(SkillOnlyWeights).Score(resultWith(1, 0, 1, 50), 1, -1)
	assert.Equal(t, 50.0, report.CompatibilityScore)
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights.Validate())
	assert.NoError(t, SkillOnlyWeights.Validate())
	assert.Error(t, Weights{Skill: 0.5, Sentiment: 0.6}.Validate())
	assert.Error(t, Weights{Skill: 1.2, Sentiment: -0.2}.Validate())
}

func TestAssess(t *testing.T) {
	tests := []struct {
		score float64
		band  types.Band
	}{
		{100, types.BandExcellent},
		{80, types.BandExcellent},
		{79.99, types.BandGood},
		{60, types.BandGood},
		{59.9, types.BandModerate},
		{40, types.BandModerate},
		{39.9, types.BandPoor},
		{0, types.BandPoor},
		{-5, types.BandPoor},
	}

	for _, tt := range tests {
		a := Assess(tt.score)
		assert.Equal(t, tt.band, a.Band, "score %.2f", tt.score)
		assert.NotEmpty(t, a.Message)
	}
}

func TestNewDistribution(t *testing.T) {
	d := NewDistribution(resultWith(2, 1, 1, 0))

	require.Equal(t, 2, d.High)
	assert.Equal(t, 1, d.Partial)
	assert.Equal(t, 1, d.Missing)
	assert.InDelta(t, 0.5, d.HighFraction, 1e-9)
	assert.InDelta(t, 0.25, d.PartialFraction, 1e-9)
	assert.InDelta(t, 0.25, d.MissingFraction, 1e-9)
}

func TestRecommendations(t *testing.T) {
	withGaps := NewScorer(DefaultWeights).Score(resultWith(2, 1, 1, 62.5), 0, 0)
	assert.Equal(t, gapRecommendations, withGaps.Recommendations)
	assert.Contains(t, withGaps.Recommendations[0], "missing skills")

	noGaps := NewScorer(DefaultWeights).Score(resultWith(2, 1, 0, 83.3), 0, 0)
	assert.Equal(t, strengthRecommendations, noGaps.Recommendations)

	// Partial matches alone do not count as gaps.
	assert.Equal(t, strengthRecommendations, Recommendations(resultWith(0, 3, 0, 50)))
	assert.Equal(t, strengthRecommendations, Recommendations(nil))
}

func TestRecommendations_ReturnsCopy(t *testing.T) {
	recs := Recommendations(resultWith(0, 0, 1, 0))
	recs[0] = "changed"

	assert.NotEqual(t, "changed", gapRecommendations[0])
}

func TestScore_NilResult(t *testing.T) {
	report := NewScorer(DefaultWeights).Score(nil, 0, 0)
	require.NotNil(t, report.SkillAnalysis)
	assert.InDelta(t, 30.0, report.CompatibilityScore, 1e-9)
}
