package sentiment

import (
	"math"
	"sync"
	"testing"

	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
)

func assertProportions(t *testing.T, s types.Sentiment) {
	t.Helper()
	assert.InDelta(t, 1.0, s.Negative+s.Neutral+s.Positive, 1e-9)
	assert.GreaterOrEqual(t, s.Compound, -1.0)
	assert.LessOrEqual(t, s.Compound, 1.0)
}

func TestScore_EmptyIsNeutral(t *testing.T) {
	scorer := NewScorer()

	for _, text := range []string{"", "   ", "... !!"} {
		s := scorer.Score(text)
		assert.Equal(t, types.Sentiment{Neutral: 1}, s, "text %q", text)
	}
}

func TestScore_NoLexiconWordsIsNeutral(t *testing.T) {
	s := NewScorer().Score("Kubernetes Docker Terraform")

	assert.Equal(t, 0.0, s.Compound)
	assert.Equal(t, 1.0, s.Neutral)
}

func TestScore_Polarity(t *testing.T) {
	scorer := NewScorer()

	positive := scorer.Score("A passionate, talented engineer with excellent communication")
	negative := scorer.Score("Terrible, toxic and stressful environment with poor support")

	assert.Greater(t, positive.Compound, 0.5)
	assert.Greater(t, positive.Positive, positive.Negative)
	assert.Less(t, negative.Compound, 0.0)
	assert.Greater(t, negative.Negative, negative.Positive)

	assertProportions(t, positive)
	assertProportions(t, negative)
}

func TestScore_CompoundNormalization(t *testing.T) {
	// "good" has valence 1.9; compound = 1.9 / sqrt(1.9^2 + 15).
	s := NewScorer().Score("good")

	assert.InDelta(t, 1.9/math.Sqrt(1.9*1.9+15), s.Compound, 1e-3)
	assert.InDelta(t, 1.0, s.Positive, 1e-9)
	assertProportions(t, s)
}

func TestScore_Negation(t *testing.T) {
	scorer := NewScorer()

	plain := scorer.Compound("the team is good")
	negated := scorer.Compound("the team is not good")
	contracted := scorer.Compound("the team isnt good")

	assert.Greater(t, plain, 0.0)
	assert.Less(t, negated, 0.0)
	assert.Less(t, contracted, 0.0)
}

func TestScore_BoostersAndEmphasis(t *testing.T) {
	scorer := NewScorer()

	base := scorer.Compound("a good team")
	boosted := scorer.Compound("a very good team")
	dampened := scorer.Compound("a slightly good team")
	exclaimed := scorer.Compound("a good team!!")
	shouted := scorer.Compound("a GOOD team")

	assert.Greater(t, boosted, base)
	assert.Less(t, dampened, base)
	assert.Greater(t, exclaimed, base)
	assert.Greater(t, shouted, base)
}

func TestScore_ContrastShiftsWeightAfterBut(t *testing.T) {
	scorer := NewScorer()

	s := scorer.Score("The pay is good but the culture is terrible")

	assert.Less(t, s.Compound, 0.0)
	assertProportions(t, s)
}

func TestScore_ConcurrentUse(t *testing.T) {
	scorer := NewScorer()
	want := scorer.Score("A great, supportive team.")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, scorer.Score("A great, supportive team."))
		}()
	}
	wg.Wait()
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer()
	text := "Delighted to bring strong leadership and proven success."

	assert.Equal(t, scorer.Score(text), scorer.Score(text))
}
