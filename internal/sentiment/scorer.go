// Package sentiment scores the tone of a text with the VADER valence lexicon.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-fit/internal/types"
	"github.com/jonreiter/govader"
)

// Scorer computes lexicon-based sentiment. The analyzer is read-only after
// construction, so a Scorer is safe for concurrent use.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer loads the VADER lexicon. Build one Scorer and share it.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity breakdown of text. Empty text, or text with no
// scorable words, is fully neutral with a zero compound. Proportions always
// sum to 1.
func (s *Scorer) Score(text string) types.Sentiment {
	neutral := types.Sentiment{Neutral: 1}
	if strings.IndexFunc(text, unicode.IsLetter) < 0 {
		return neutral
	}

	scores := s.analyzer.PolarityScores(text)
	total := scores.Positive + scores.Negative + scores.Neutral
	if total <= 0 {
		return neutral
	}
	return types.Sentiment{
		Negative: scores.Negative / total,
		Neutral:  scores.Neutral / total,
		Positive: scores.Positive / total,
		Compound: clip(scores.Compound, -1, 1),
	}
}

// Compound is a convenience for Score(text).Compound.
func (s *Scorer) Compound(text string) float64 {
	return s.Score(text).Compound
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
