// Package pipeline provides the high-level orchestration of one skill analysis run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/matching"
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/pipeline/steps"
	"github.com/jonathan/resume-fit/internal/scoring"
	"github.com/jonathan/resume-fit/internal/sentiment"
	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It is always
// invoked from the goroutine that called Run.
type ProgressCallback func(event ProgressEvent)

// Request holds the inputs of one analysis.
type Request struct {
	ResumeText string
	JobText    string
	OnProgress ProgressCallback
}

// Options wires the stage implementations. Nil fields select the defaults:
// vocabulary-only extraction, heuristic similarity with default thresholds,
// and the default 70/30 weights.
type Options struct {
	Extractor *skills.Extractor
	Sentiment *sentiment.Scorer
	Matcher   *matching.Matcher
	Scorer    *scoring.Scorer
	Logger    *zap.Logger
}

// Analyzer runs the normalize, extract, sentiment, match and score stages.
// It keeps no per-run state and may serve concurrent runs.
type Analyzer struct {
	extractor *skills.Extractor
	sentiment *sentiment.Scorer
	matcher   *matching.Matcher
	scorer    *scoring.Scorer
	log       *zap.Logger
}

// NewAnalyzer builds an Analyzer from opts.
func NewAnalyzer(opts Options) *Analyzer {
	log := logger.OrNop(opts.Logger)
	a := &Analyzer{
		extractor: opts.Extractor,
		sentiment: opts.Sentiment,
		matcher:   opts.Matcher,
		scorer:    opts.Scorer,
		log:       log,
	}
	if a.extractor == nil {
		a.extractor = skills.NewExtractor(skills.Options{Logger: log})
	}
	if a.sentiment == nil {
		a.sentiment = sentiment.NewScorer()
	}
	if a.matcher == nil {
		a.matcher = matching.NewMatcher(nil, matching.DefaultThresholds, log)
	}
	if a.scorer == nil {
		a.scorer = scoring.NewScorer(scoring.DefaultWeights)
	}
	return a
}

// Extractor returns the skill extractor in use.
func (a *Analyzer) Extractor() *skills.Extractor {
	return a.extractor
}

// Sentiment returns the sentiment scorer in use.
func (a *Analyzer) Sentiment() *sentiment.Scorer {
	return a.sentiment
}

// Run executes one analysis. Degraded conditions (empty documents, recognizer
// or embedding failures) still produce a complete report; the only error
// returned is the context's.
func (a *Analyzer) Run(ctx context.Context, req Request) (*types.AnalysisRun, error) {
	run := &types.AnalysisRun{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
	log := a.log.With(zap.String(logger.FieldRunID, run.RunID.String()))
	tracker := steps.NewTracker()

	emit := func(step, message string, content any) {
		if err := tracker.Complete(step); err != nil {
			log.Error("step completed out of order", zap.Error(err))
		}
		log.Debug(message, zap.String("stage", step))
		if req.OnProgress == nil {
			return
		}
		req.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			RunID:    run.RunID.String(),
			Content:  content,
		})
	}

	run.ResumeText = parsing.NormalizeText(req.ResumeText)
	run.JobText = parsing.NormalizeText(req.JobText)
	if run.ResumeText == "" && run.JobText == "" {
		log.Warn("both documents are empty after normalization")
	}
	emit(steps.StepNormalize, fmt.Sprintf("Normalized documents: resume %d chars, job %d chars",
		len(run.ResumeText), len(run.JobText)), nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Extraction may call out to an LLM; its goroutines report cancellation so
	// Wait surfaces it. Sentiment scoring is pure and cannot fail.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		run.ResumeSkills = a.extractor.Extract(gCtx, run.ResumeText)
		return gCtx.Err()
	})
	g.Go(func() error {
		run.JobSkills = a.extractor.Extract(gCtx, run.JobText)
		return gCtx.Err()
	})
	g.Go(func() error {
		run.ResumeSentiment = a.sentiment.Score(run.ResumeText)
		return nil
	})
	g.Go(func() error {
		run.JobSentiment = a.sentiment.Score(run.JobText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	emit(steps.StepExtract, fmt.Sprintf("Extracted %d resume skills and %d job skills",
		run.ResumeSkills.Len(), run.JobSkills.Len()),
		map[string]types.SkillSet{"resume_skills": run.ResumeSkills, "job_skills": run.JobSkills})
	emit(steps.StepSentiment, fmt.Sprintf("Scored sentiment: resume %.3f, job %.3f",
		run.ResumeSentiment.Compound, run.JobSentiment.Compound),
		map[string]types.Sentiment{"resume": run.ResumeSentiment, "job": run.JobSentiment})

	result := a.matcher.Match(ctx, run.ResumeSkills, run.JobSkills)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emit(steps.StepMatch, fmt.Sprintf("Matched %d job skills: %d high, %d partial, %d missing (%s)",
		result.Total(), result.HighCount(), result.PartialCount(), result.MissingCount(), result.SimilaritySource), result)

	run.Report = a.scorer.Score(result, run.ResumeSentiment.Compound, run.JobSentiment.Compound)
	run.CompletedAt = time.Now().UTC()
	emit(steps.StepScore, fmt.Sprintf("Compatibility %.1f%% (%s)",
		run.Report.CompatibilityScore, run.Report.Assessment.Band), run.Report)

	log.Info("analysis completed",
		zap.Float64("compatibility_score", run.Report.CompatibilityScore),
		zap.String("band", string(run.Report.Assessment.Band)),
		zap.String("similarity_source", result.SimilaritySource),
		zap.Duration("duration", run.CompletedAt.Sub(run.StartedAt)),
	)
	return run, nil
}
