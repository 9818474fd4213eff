package matching

import (
	"context"

	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/types"
	"go.uber.org/zap"
)

// Weights of each tier in the overall match percentage.
const (
	highMatchWeight    = 1.0
	partialMatchWeight = 0.5
)

// SourceNone is recorded when no similarity was computed because a skill set was empty.
const SourceNone = "none"

// Matcher classifies required skills against candidate skills. It keeps no
// per-run state, so one Matcher serves concurrent runs as long as its
// embedding provider does.
type Matcher struct {
	provider   embedding.Provider
	thresholds Thresholds
	log        *zap.Logger
}

// NewMatcher returns a Matcher. A nil provider always uses heuristic similarity.
func NewMatcher(provider embedding.Provider, thresholds Thresholds, log *zap.Logger) *Matcher {
	return &Matcher{
		provider:   provider,
		thresholds: thresholds,
		log:        logger.OrNop(log),
	}
}

// Thresholds returns the tier boundaries in use.
func (m *Matcher) Thresholds() Thresholds {
	return m.thresholds
}

// Match produces exactly one SkillMatch per job skill. When either set is empty
// every job skill is missing with similarity 0. Provider failures fall back to
// heuristic similarity and are never returned.
func (m *Matcher) Match(ctx context.Context, resume, job types.SkillSet) *types.SkillAnalysisResult {
	result := types.NewSkillAnalysisResult()

	if resume.IsEmpty() || job.IsEmpty() {
		for _, skill := range job.Items() {
			result.Add(types.SkillMatch{JobSkill: skill, Tier: types.TierMissing})
		}
		result.SimilaritySource = SourceNone
		return result
	}

	union := resume.Union(job).Items()
	similarity := SelectSimilarity(ctx, m.provider, union, m.log)
	matrix := NewSimilarityMatrix(union, similarity)
	result.SimilaritySource = similarity.Source()

	resumeSkills := resume.Items()
	for _, jobSkill := range job.Items() {
		best := 0.0
		bestSkill := ""
		for _, resumeSkill := range resumeSkills {
			score, _ := matrix.Between(jobSkill, resumeSkill)
			// Strict comparison keeps the first maximum in resume order.
			if score > best {
				best = score
				bestSkill = resumeSkill
			}
		}
		result.Add(types.SkillMatch{
			JobSkill:    jobSkill,
			ResumeSkill: bestSkill,
			Similarity:  best,
			Tier:        m.thresholds.Classify(best),
		})
	}

	result.OverallMatchPercent = OverallMatchPercent(result)

	m.log.Debug("skills matched",
		zap.String("similarity_source", result.SimilaritySource),
		zap.Int("high", result.HighCount()),
		zap.Int("partial", result.PartialCount()),
		zap.Int("missing", result.MissingCount()),
		zap.Float64("overall_match_percent", result.OverallMatchPercent))

	return result
}

// OverallMatchPercent is (high + 0.5*partial) / total * 100, or 0 with no skills.
func OverallMatchPercent(result *types.SkillAnalysisResult) float64 {
	total := result.Total()
	if total == 0 {
		return 0
	}
	weighted := float64(result.HighCount())*highMatchWeight + float64(result.PartialCount())*partialMatchWeight
	return weighted / float64(total) * 100
}
