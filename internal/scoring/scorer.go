// Package scoring turns a skill analysis and two sentiment readings into a compatibility report.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-fit/internal/types"
)

// Tier weights in the skill gap.
const (
	missingGapWeight = 1.0
	partialGapWeight = 0.5
)

// Weights blends skill match and sentiment into the compatibility score.
type Weights struct {
	Skill     float64 `json:"skill" mapstructure:"skill"`
	Sentiment float64 `json:"sentiment" mapstructure:"sentiment"`
}

// DefaultWeights weighs skill overlap at 70% and tonal similarity at 30%.
var DefaultWeights = Weights{Skill: 0.7, Sentiment: 0.3}

// SkillOnlyWeights scores on skill overlap alone.
var SkillOnlyWeights = Weights{Skill: 1.0, Sentiment: 0}

// Validate checks that both weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Skill < 0 || w.Sentiment < 0 {
		return fmt.Errorf("weights must be non-negative: skill=%.2f sentiment=%.2f", w.Skill, w.Sentiment)
	}
	if math.Abs(w.Skill+w.Sentiment-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1: skill=%.2f sentiment=%.2f", w.Skill, w.Sentiment)
	}
	return nil
}

// Scorer computes AnalysisReports. It is immutable and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer returns a Scorer with the given weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the blend in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score builds the report for result given the compound sentiment of both documents.
func (s *Scorer) Score(result *types.SkillAnalysisResult, resumeCompound, jobCompound float64) *types.AnalysisReport {
	if result == nil {
		result = types.NewSkillAnalysisResult()
	}

	gap := SkillGapPercent(result)
	coverage := SkillCoveragePercent(result)
	divergence := SentimentDivergence(resumeCompound, jobCompound)
	sentimentScore := SentimentScore(divergence)
	compatibility := s.Compatibility(result.OverallMatchPercent, sentimentScore)

	return &types.AnalysisReport{
		SkillAnalysis:        result,
		CompatibilityScore:   compatibility,
		SkillGapPercent:      gap,
		SkillCoveragePercent: coverage,
		SentimentDivergence:  divergence,
		SentimentScore:       sentimentScore,
		Assessment:           Assess(compatibility),
		Distribution:         NewDistribution(result),
		Recommendations:      Recommendations(result),
	}
}

// Compatibility blends overall match and sentiment score, clamped to [0, 100].
func (s *Scorer) Compatibility(overallMatchPercent, sentimentScore float64) float64 {
	return clip(overallMatchPercent*s.weights.Skill+sentimentScore*s.weights.Sentiment, 0, 100)
}

// SkillGapPercent is (missing + 0.5*partial) / total * 100, or 0 with no required skills.
func SkillGapPercent(result *types.SkillAnalysisResult) float64 {
	total := result.Total()
	if total == 0 {
		return 0
	}
	gap := float64(result.MissingCount())*missingGapWeight + float64(result.PartialCount())*partialGapWeight
	return gap / float64(total) * 100
}

// SkillCoveragePercent is 100 minus the gap, or 0 with no required skills.
func SkillCoveragePercent(result *types.SkillAnalysisResult) float64 {
	if result.Total() == 0 {
		return 0
	}
	return 100 - SkillGapPercent(result)
}

// SentimentDivergence is |resume - job|, in [0, 2].
func SentimentDivergence(resumeCompound, jobCompound float64) float64 {
	return math.Abs(resumeCompound - jobCompound)
}

// SentimentScore maps a divergence to max(0, 100 - divergence*100).
func SentimentScore(divergence float64) float64 {
	return math.Max(0, 100-divergence*100)
}

// NewDistribution summarizes the tier counts and their fractions of the total.
func NewDistribution(result *types.SkillAnalysisResult) types.Distribution {
	d := types.Distribution{
		High:    result.HighCount(),
		Partial: result.PartialCount(),
		Missing: result.MissingCount(),
	}
	total := float64(result.Total())
	if total == 0 {
		return d
	}
	d.HighFraction = float64(d.High) / total
	d.PartialFraction = float64(d.Partial) / total
	d.MissingFraction = float64(d.Missing) / total
	return d
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
