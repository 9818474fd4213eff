package skills

import (
	"context"
	"strings"

	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/types"
	"go.uber.org/zap"
)

// Options configures an Extractor. Zero values select the defaults.
type Options struct {
	Vocabulary *Vocabulary
	Recognizer EntityRecognizer
	// Labels are the entity categories added as skills.
	Labels []string
	Logger *zap.Logger
}

// Extractor derives a SkillSet from normalized text. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	vocabulary *Vocabulary
	recognizer EntityRecognizer
	labels     map[string]struct{}
	log        *zap.Logger
}

// NewExtractor builds an Extractor from opts.
func NewExtractor(opts Options) *Extractor {
	vocabulary := opts.Vocabulary
	if vocabulary == nil {
		vocabulary = DefaultVocabulary()
	}
	recognizer := opts.Recognizer
	if recognizer == nil {
		recognizer = NopRecognizer{}
	}
	labels := opts.Labels
	if len(labels) == 0 {
		labels = DefaultEntityLabels
	}
	return &Extractor{
		vocabulary: vocabulary,
		recognizer: recognizer,
		labels:     labelSet(labels),
		log:        logger.OrNop(opts.Logger),
	}
}

// RecognizerName reports which entity recognizer is configured.
func (e *Extractor) RecognizerName() string {
	return e.recognizer.Name()
}

// Extract returns the sorted, deduplicated skills found in text. Empty text
// yields an empty set without invoking the recognizer. A recognizer failure is
// logged and extraction continues with vocabulary hits only.
func (e *Extractor) Extract(ctx context.Context, text string) types.SkillSet {
	if strings.TrimSpace(text) == "" {
		return types.NewSkillSet()
	}

	tokens := e.vocabulary.Match(text)

	entities, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		e.log.Warn("entity recognition failed, using vocabulary only",
			zap.String("recognizer", e.recognizer.Name()),
			zap.Error(err))
	}
	for _, entity := range entities {
		if _, ok := e.labels[strings.ToUpper(entity.Label)]; !ok {
			continue
		}
		tokens = append(tokens, entity.Text)
	}

	return types.NewSortedSkillSet(parsing.NormalizeSkillNames(tokens)...)
}
