package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/llm"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/matching"
	"github.com/jonathan/resume-fit/internal/scoring"
	"github.com/jonathan/resume-fit/internal/sentiment"
	"github.com/jonathan/resume-fit/internal/skills"
	"go.uber.org/zap"
)

// ClientFactory opens the Gemini client. Tests substitute a fake.
type ClientFactory func(ctx context.Context, cfg *llm.Config, apiKey string) (GeminiClient, error)

// GeminiClient is the subset of llm.GeminiClient the analyzer depends on.
type GeminiClient interface {
	llm.Client
	llm.Embedder
}

// DefaultClientFactory opens a real Gemini client.
func DefaultClientFactory(ctx context.Context, cfg *llm.Config, apiKey string) (GeminiClient, error) {
	return llm.NewClient(ctx, cfg, apiKey)
}

// Build assembles an Analyzer from cfg. The returned closer releases the
// Gemini client when one was opened and is never nil.
func Build(ctx context.Context, cfg *config.Config, newClient ClientFactory, log *zap.Logger) (*Analyzer, func() error, error) {
	log = logger.OrNop(log)
	closer := func() error { return nil }
	if newClient == nil {
		newClient = DefaultClientFactory
	}

	thresholds, err := matching.ThresholdsForPreset(cfg.Matching.Preset)
	if err != nil {
		return nil, closer, err
	}
	weights := scoring.Weights{Skill: cfg.Scoring.SkillWeight, Sentiment: cfg.Scoring.SentimentWeight}
	if err := weights.Validate(); err != nil {
		return nil, closer, err
	}

	var client GeminiClient
	if cfg.Embedding.Provider == "gemini" || cfg.Skills.Recognizer == "llm" {
		llmCfg := llm.DefaultConfig()
		if cfg.Embedding.Model != "" {
			llmCfg = llmCfg.WithEmbeddingModel(cfg.Embedding.Model)
		}
		client, err = newClient(ctx, llmCfg, cfg.Gemini.APIKey)
		if err != nil {
			return nil, closer, fmt.Errorf("failed to create LLM client: %w", err)
		}
		closer = client.Close
		logger.WithFields(log, logger.ProviderFields(string(llmCfg.Provider), llmCfg.GetEmbeddingModel())...).
			Debug("LLM client opened", zap.String("recognition_model", client.GetModel(llm.TierLite)))
	}

	var recognizer skills.EntityRecognizer
	switch cfg.Skills.Recognizer {
	case "llm":
		recognizer = skills.NewLLMRecognizer(client)
	case "rules":
		recognizer = skills.NewRuleRecognizer()
	default:
		recognizer = skills.NopRecognizer{}
	}

	var provider embedding.Provider
	switch cfg.Embedding.Provider {
	case "gemini":
		provider = embedding.NewGemini(client, cfg.Embedding.Model)
	case "hashing":
		provider = embedding.NewHashing(cfg.Embedding.Dimensions)
	}
	if provider != nil && cfg.Embedding.Cache {
		provider = embedding.NewCached(provider)
	}

	providerName := matching.SourceHeuristic
	if provider != nil {
		providerName = provider.Name()
	}
	log.Info("analyzer configured",
		zap.String("recognizer", recognizer.Name()),
		zap.String("similarity", providerName),
		zap.String("preset", cfg.Matching.Preset),
		zap.Float64("skill_weight", weights.Skill),
		zap.Float64("sentiment_weight", weights.Sentiment),
	)

	analyzer := NewAnalyzer(Options{
		Extractor: skills.NewExtractor(skills.Options{
			Recognizer: recognizer,
			Labels:     cfg.Skills.Labels,
			Logger:     log,
		}),
		Sentiment: sentiment.NewScorer(),
		Matcher:   matching.NewMatcher(provider, thresholds, log),
		Scorer:    scoring.NewScorer(weights),
		Logger:    log,
	})
	return analyzer, closer, nil
}
