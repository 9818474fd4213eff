package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchTier classifies how well a required skill is covered by the candidate.
type MatchTier string

const (
	// TierHigh means the best candidate skill is strongly similar.
	TierHigh MatchTier = "high"
	// TierPartial means the best candidate skill is somewhat similar.
	TierPartial MatchTier = "partial"
	// TierMissing means no candidate skill is similar enough.
	TierMissing MatchTier = "missing"
)

// SkillMatch is the classification of one required (job) skill.
// ResumeSkill is empty for missing skills with no positive similarity.
type SkillMatch struct {
	JobSkill    string    `json:"job_skill"`
	ResumeSkill string    `json:"resume_skill,omitempty"`
	Similarity  float64   `json:"similarity"`
	Tier        MatchTier `json:"tier"`
}

// SkillAnalysisResult holds exactly one SkillMatch per required skill,
// grouped by tier, plus the overall match percentage.
type SkillAnalysisResult struct {
	HighMatches         []SkillMatch `json:"high_matches"`
	PartialMatches      []SkillMatch `json:"partial_matches"`
	MissingSkills       []SkillMatch `json:"missing_skills"`
	OverallMatchPercent float64      `json:"overall_match_percent"`
	SimilaritySource    string       `json:"similarity_source"`
}

// NewSkillAnalysisResult returns a result with non-nil, empty tier lists.
func NewSkillAnalysisResult() *SkillAnalysisResult {
	return &SkillAnalysisResult{
		HighMatches:    []SkillMatch{},
		PartialMatches: []SkillMatch{},
		MissingSkills:  []SkillMatch{},
	}
}

// Add appends the match to the list for its tier.
func (r *SkillAnalysisResult) Add(m SkillMatch) {
	switch m.Tier {
	case TierHigh:
		r.HighMatches = append(r.HighMatches, m)
	case TierPartial:
		r.PartialMatches = append(r.PartialMatches, m)
	default:
		m.Tier = TierMissing
		r.MissingSkills = append(r.MissingSkills, m)
	}
}

// HighCount returns the number of high matches.
func (r *SkillAnalysisResult) HighCount() int { return len(r.HighMatches) }

// PartialCount returns the number of partial matches.
func (r *SkillAnalysisResult) PartialCount() int { return len(r.PartialMatches) }

// MissingCount returns the number of missing skills.
func (r *SkillAnalysisResult) MissingCount() int { return len(r.MissingSkills) }

// Total returns the number of classified required skills.
func (r *SkillAnalysisResult) Total() int {
	return r.HighCount() + r.PartialCount() + r.MissingCount()
}

// Sentiment is a lexicon-based polarity breakdown of a text.
// Negative, Neutral and Positive sum to 1; Compound is in [-1, 1].
type Sentiment struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Band is the human-readable assessment bucket of a compatibility score.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandModerate  Band = "moderate"
	BandPoor      Band = "poor"
)

// Assessment pairs a band with its display message.
type Assessment struct {
	Band    Band   `json:"band"`
	Message string `json:"message"`
}

// Distribution is the three-slice High/Partial/Missing proportion consumed by chart renderers.
type Distribution struct {
	High            int     `json:"high"`
	Partial         int     `json:"partial"`
	Missing         int     `json:"missing"`
	HighFraction    float64 `json:"high_fraction"`
	PartialFraction float64 `json:"partial_fraction"`
	MissingFraction float64 `json:"missing_fraction"`
}

// AnalysisReport is the scored outcome of one analysis run.
type AnalysisReport struct {
	SkillAnalysis        *SkillAnalysisResult `json:"skill_analysis"`
	CompatibilityScore   float64              `json:"compatibility_score"`
	SkillGapPercent      float64              `json:"skill_gap_percent"`
	SkillCoveragePercent float64              `json:"skill_coverage_percent"`
	SentimentDivergence  float64              `json:"sentiment_divergence"`
	SentimentScore       float64              `json:"sentiment_score"`
	Assessment           Assessment           `json:"assessment"`
	Distribution         Distribution         `json:"distribution"`
	Recommendations      []string             `json:"recommendations"`
}

// AnalysisRun is the value threaded through one pipeline invocation.
// Each run owns its skill sets and report; nothing is shared between runs.
type AnalysisRun struct {
	RunID           uuid.UUID       `json:"run_id"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     time.Time       `json:"completed_at"`
	ResumeText      string          `json:"-"`
	JobText         string          `json:"-"`
	ResumeSkills    SkillSet        `json:"resume_skills"`
	JobSkills       SkillSet        `json:"job_skills"`
	ResumeSentiment Sentiment       `json:"resume_sentiment"`
	JobSentiment    Sentiment       `json:"job_sentiment"`
	Report          *AnalysisReport `json:"report"`
}
