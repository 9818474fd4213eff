package steps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{StepNormalize, StepExtract, StepSentiment, StepMatch, StepScore}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryPreprocessing: {StepNormalize},
		CategoryAnalysis:      {StepExtract, StepSentiment, StepMatch},
		CategoryScoring:       {StepScore},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			assert.Equal(t, category, StepRegistry[stepName].Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Contains(t, err.Error(), "test_step")
}

func TestValidateDependencies(t *testing.T) {
	err := ValidateDependencies(nil, "unknown_step")
	assert.ErrorContains(t, err, "unknown step")

	assert.NoError(t, ValidateDependencies(nil, StepNormalize))

	err = ValidateDependencies(map[string]bool{StepMatch: true}, StepScore)
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, []string{StepSentiment}, depErr.MissingDependencies)
}

func TestOrder(t *testing.T) {
	assert.Equal(t, []string{StepNormalize, StepExtract, StepSentiment, StepMatch, StepScore}, Order())
	assert.Equal(t, 1, Position(StepNormalize))
	assert.Equal(t, 5, Position(StepScore))
	assert.Equal(t, 0, Position("render_latex"))
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	assert.Error(t, tr.Complete(StepMatch))
	for _, name := range Order() {
		require.NoError(t, tr.Complete(name))
		assert.True(t, tr.Completed(name))
	}
}
